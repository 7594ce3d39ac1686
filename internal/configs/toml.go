package configs

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// LoadTOML loads a TOML file into a struct. Keys the struct does not
// declare are rejected so typos do not silently fall back to defaults.
func LoadTOML(filePath string, data interface{}) error {
	md, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys: %v", undecoded)
	}
	return nil
}

// WriteTOML encodes a struct as TOML to w.
func WriteTOML(w io.Writer, data interface{}) error {
	return toml.NewEncoder(w).Encode(data)
}
