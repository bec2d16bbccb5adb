package scval

// Category names the contract family a response came from. It routes decode
// errors and lets the CLI pick the right extractor.
type Category string

const (
	CategoryOracle       Category = "oracle"
	CategoryPool         Category = "pool"
	CategoryBackstop     Category = "backstop"
	CategoryUserPosition Category = "user-position"
	CategoryEmission     Category = "emission"
)

// ParsingContext describes which contract call produced a value. It travels
// alongside the value so decode errors stay actionable; it is never mutated.
type ParsingContext struct {
	Function string   `json:"function"`
	Category Category `json:"category"`
	Meta     string   `json:"meta,omitempty"`
}
