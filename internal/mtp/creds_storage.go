package mtp

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/rusq/encio"
)

// credsStorage is the encrypted on-disk storage for the telegram API
// credentials.
type credsStorage struct {
	filename string
}

// creds is the structure of data in the storage.
type creds struct {
	ApiID   int    `json:"api_id,omitempty"`
	ApiHash string `json:"api_hash,omitempty"`
}

var errNoCreds = errors.New("no credentials in the storage")

func (c creds) validate() error {
	if c.ApiID == 0 || c.ApiHash == "" {
		return errNoCreds
	}
	return nil
}

func (c creds) encode(w io.Writer) error {
	return json.NewEncoder(w).Encode(c)
}

func (c *creds) decode(r io.Reader) error {
	return json.NewDecoder(r).Decode(c)
}

func (cs credsStorage) IsAvailable() bool {
	return cs.filename != ""
}

func (cs credsStorage) Save(apiID int, apiHash string) error {
	f, err := encio.Create(cs.filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return creds{ApiID: apiID, ApiHash: apiHash}.encode(f)
}

func (cs credsStorage) Load() (int, string, error) {
	f, err := encio.Open(cs.filename)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	var c creds
	if err := c.decode(f); err != nil {
		return 0, "", err
	}
	if err := c.validate(); err != nil {
		return 0, "", err
	}
	return c.ApiID, c.ApiHash, nil
}
