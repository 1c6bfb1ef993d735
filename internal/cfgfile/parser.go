package cfgfile

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// isSeparator reports whether r separates tokens on a config line.
func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', ':', '=', '\r', '\n':
		return true
	}
	return false
}

// tokenize splits a raw config line into its key and value.
//
// Blank lines and comments return skip=true. Tokens after the value are
// ignored, so "serial = /dev/ttyS0 # primary" yields "/dev/ttyS0".
func tokenize(line string) (key, value string, skip bool, err *ConfigError) {
	line = strings.TrimLeft(line, " \t")
	if line == "" || line[0] == '\n' || line[0] == '\r' || line[0] == '#' {
		return "", "", true, nil
	}

	fields := strings.FieldsFunc(line, isSeparator)
	if len(fields) == 0 {
		return "", "", false, newMalformedLineError("invalid config line: " + strings.TrimRight(line, "\r\n"))
	}
	if len(fields) == 1 {
		e := newMalformedLineError("missing value for config key: " + fields[0])
		e.Key = fields[0]
		return "", "", false, e
	}
	return fields[0], fields[1], false, nil
}

// applyLine tokenizes one line and applies it to c.
func (c *Config) applyLine(line string) *ConfigError {
	key, value, skip, err := tokenize(line)
	if skip {
		return nil
	}
	if err != nil {
		return err
	}
	return c.set(key, value)
}

// Decode parses config file text on top of the defaults.
//
// Lines that cannot be applied are skipped; one *ConfigError per skipped
// line is returned, in file order. A read error ends decoding and is
// reported last, as ErrTypeFileUnavailable. Decode performs no locking.
func Decode(r io.Reader) (*Config, []error) {
	cfg := DefaultConfig()
	problems, err := decodeInto(cfg, r, "")
	if err != nil {
		problems = append(problems, &ConfigError{
			Type:    ErrTypeFileUnavailable,
			Message: "failed to read config input",
			Err:     err,
		})
	}
	return cfg, problems
}

// decodeInto applies every line of r to cfg. Lines read before a read error
// are applied; the read error itself is returned separately from problems.
func decodeInto(cfg *Config, r io.Reader, path string) ([]error, error) {
	var problems []error

	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, readErr := br.ReadString('\n')
		if line != "" {
			lineNo++
			if err := cfg.applyLine(line); err != nil {
				err.Path = path
				err.Line = lineNo
				problems = append(problems, err)
			}
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				return problems, readErr
			}
			return problems, nil
		}
	}
}
