package main

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type envelope map[string]any

// writeJSON serializes data to indented JSON on the app's output.
func (a *app) writeJSON(data envelope) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')
	_, err = a.out.Write(js)
	return err
}

// open opens path for reading; "-" is standard input.
func (a *app) open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// readYAML decodes the YAML document at path into dst.
func (a *app) readYAML(path string, dst any) error {
	r, err := a.open(path)
	if err != nil {
		return err
	}
	defer r.Close()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	return dec.Decode(dst)
}

// int64Flag returns a flag.Func setter that stores a parsed value in *dst,
// leaving it nil when the flag is absent.
func int64Flag(dst **int64) func(string) error {
	return func(s string) error {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*dst = &n
		return nil
	}
}

func float64Flag(dst **float64) func(string) error {
	return func(s string) error {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*dst = &f
		return nil
	}
}
