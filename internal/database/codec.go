package database

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	"path/filepath"
	"roster/internal/model"
	"strings"
)

const (
	formatName    = "roster"
	formatVersion = 1
)

// Codec converts a whole collection to and from its on-disk form.
type Codec interface {
	Encode(w io.Writer, students []model.Student) error
	// Decode returns every record it could read. A non-nil error with a
	// non-empty slice means the data was only partly recovered.
	Decode(r io.Reader) ([]model.Student, error)
}

// CodecFor picks the codec from the file extension. YAML for .yaml and .yml,
// JSON Lines for everything else.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONLinesCodec{}
	}
}

type header struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
}

// JSONLinesCodec writes a header line followed by one JSON object per record.
// Invalid UTF-8 in a string field is stored as U+FFFD by encoding/json.
//
//	{"format":"roster","version":1}
//	{"name":"Alice","roll_number":101,"grade":"A"}
type JSONLinesCodec struct{}

func (JSONLinesCodec) Encode(w io.Writer, students []model.Student) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(header{Format: formatName, Version: formatVersion}); err != nil {
		return err
	}
	for _, s := range students {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}

func (JSONLinesCodec) Decode(r io.Reader) ([]model.Student, error) {
	students := []model.Student{}
	reader := bufio.NewReader(r)

	var errs []error
	lineNo := 0
	seenHeader := false
	for {
		// ReadBytes has no line length limit, unlike bufio.Scanner.
		raw, readErr := reader.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			errs = append(errs, readErr)
			break
		}
		if len(raw) == 0 && readErr == io.EOF {
			break
		}
		lineNo++

		line := bytes.TrimSpace(raw)
		if len(line) > 0 {
			if !seenHeader {
				if err := checkHeader(line); err != nil {
					return students, fmt.Errorf("line %d: %w", lineNo, err)
				}
				seenHeader = true
			} else {
				var s model.Student
				if err := json.Unmarshal(line, &s); err != nil {
					// Skip the damaged record and keep the rest.
					errs = append(errs, fmt.Errorf("line %d: %w", lineNo, err))
				} else {
					students = append(students, s)
				}
			}
		}

		if readErr == io.EOF {
			break
		}
	}
	if !seenHeader && len(errs) == 0 {
		errs = append(errs, errors.New("missing header"))
	}

	return students, errors.Join(errs...)
}

func checkHeader(line []byte) error {
	var h header
	if err := json.Unmarshal(line, &h); err != nil {
		return fmt.Errorf("invalid header: %w", err)
	}
	if h.Format != formatName {
		return fmt.Errorf("unknown format %q", h.Format)
	}
	return checkVersion(h.Version)
}

func checkVersion(v int) error {
	if v < 1 || v > formatVersion {
		return fmt.Errorf("unsupported version %d", v)
	}
	return nil
}

type yamlDocument struct {
	Version  int             `yaml:"version"`
	Students []model.Student `yaml:"students"`
}

// YAMLCodec stores the collection as a single YAML document.
type YAMLCodec struct{}

func (YAMLCodec) Encode(w io.Writer, students []model.Student) error {
	if students == nil {
		students = []model.Student{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlDocument{Version: formatVersion, Students: students}); err != nil {
		return err
	}
	return enc.Close()
}

func (YAMLCodec) Decode(r io.Reader) ([]model.Student, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []model.Student{}, errors.New("empty document")
		}
		return []model.Student{}, err
	}
	if err := checkVersion(doc.Version); err != nil {
		return []model.Student{}, err
	}
	if doc.Students == nil {
		doc.Students = []model.Student{}
	}
	return doc.Students, nil
}
