package serialization

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
)

// ErrCorrupted is returned for any document that cannot be turned back into an aggregate.
var ErrCorrupted = shared.NewDomainError("serialization", "Decode", shared.ErrDataConversion,
	"Data in storage is corrupted")

// Encode returns the indented JSON document of t. Equal aggregates encode to
// identical bytes.
func Encode(t tutorspet.ReadOnlyTutorsPet) ([]byte, error) {
	data, err := json.MarshalIndent(FromDomain(t), "", "  ")
	if err != nil {
		return nil, shared.WrapError("serialization", "Encode", shared.ErrDataConversion, "failed to encode document", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a JSON document strictly. Unknown fields, trailing data and any
// value the domain rejects yield an error matching shared.ErrDataConversion.
func Decode(data []byte) (*tutorspet.TutorsPet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, corrupted(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, corrupted(errors.New("unexpected data after document"))
	}

	t, err := doc.ToDomain()
	if err != nil {
		return nil, corrupted(err)
	}
	return t, nil
}

func corrupted(err error) error {
	return shared.WrapError(ErrCorrupted.Domain, ErrCorrupted.Op, shared.ErrDataConversion, ErrCorrupted.Message, err)
}

// Fingerprint returns the hex BLAKE2b-256 digest of an encoded document.
func Fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
