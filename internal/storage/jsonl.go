package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JsonlStorage writes records to a JSONL file, one JSON document per line.
// Opening truncates any previous content so a rerun replaces stale output.
type JsonlStorage struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
}

func NewJsonlStorage(path string) (*JsonlStorage, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}

	return &JsonlStorage{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

// Put appends one record as a JSON line.
func (s *JsonlStorage) Put(record interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(record)
}

// PutBatch appends a batch of records as JSON lines.
func (s *JsonlStorage) PutBatch(records []interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range records {
		if err := s.put(record); err != nil {
			return err
		}
	}
	return nil
}

func (s *JsonlStorage) put(record interface{}) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if _, err := s.writer.Write(line); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err := s.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}

// Close flushes buffered lines and closes the file.
func (s *JsonlStorage) Close() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writer.Flush(); err != nil {
		s.file.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	return s.file.Close()
}
