// Copyright 2026 The RepairDesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package backup implements export and import of the repair desk's
// data as a single archive file. An archive holds the user and
// repair request collections as deterministic CBOR, compressed with
// zstd and guarded by a BLAKE3 checksum. The signed-in session is
// deliberately not archived: it belongs to a machine, not to the
// data.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/lc-facilities/repairdesk/lib/clock"
	"github.com/lc-facilities/repairdesk/lib/codec"
	"github.com/lc-facilities/repairdesk/lib/schema/repair"
	"github.com/lc-facilities/repairdesk/lib/store"
)

// magic identifies a repairdesk archive. The trailing digit is the
// format version.
var magic = []byte("RDESKBK1")

// checksumSize is the length of the BLAKE3 digest that follows the
// magic.
const checksumSize = 32

// ErrCorrupt is returned when an archive fails the checksum or
// cannot be parsed.
var ErrCorrupt = errors.New("archive is corrupt")

// ErrFormat is returned when the input is not a repairdesk archive
// or uses an unknown format version.
var ErrFormat = errors.New("not a repairdesk archive")

// payload is the archived data. CreatedAt records when the export
// ran, as a calendar day.
type payload struct {
	CreatedAt string                 `cbor:"createdAt"`
	Users     []repair.User          `cbor:"users"`
	Requests  []repair.RepairRequest `cbor:"repairRequests"`
}

// Summary describes an archive's contents.
type Summary struct {
	CreatedAt string
	Users     int
	Requests  int
}

// Export writes an archive of the store's collections to w.
func Export(ctx context.Context, s store.Store, c clock.Clock, w io.Writer) (Summary, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("backup: loading users: %w", err)
	}
	requests, err := s.Requests(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("backup: loading requests: %w", err)
	}

	body := payload{
		CreatedAt: c.Now().Format(repair.DateFormat),
		Users:     users,
		Requests:  requests,
	}
	encoded, err := codec.Marshal(body)
	if err != nil {
		return Summary{}, fmt.Errorf("backup: encoding archive: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return Summary{}, fmt.Errorf("backup: initializing compressor: %w", err)
	}
	compressed := encoder.EncodeAll(encoded, nil)
	encoder.Close()

	checksum := blake3.Sum256(compressed)

	for _, chunk := range [][]byte{magic, checksum[:], compressed} {
		if _, err := w.Write(chunk); err != nil {
			return Summary{}, fmt.Errorf("backup: writing archive: %w", err)
		}
	}
	return Summary{CreatedAt: body.CreatedAt, Users: len(users), Requests: len(requests)}, nil
}

// ExportFile writes an archive to path, creating or truncating it.
func ExportFile(ctx context.Context, s store.Store, c clock.Clock, path string) (Summary, error) {
	file, err := os.Create(path)
	if err != nil {
		return Summary{}, fmt.Errorf("backup: creating %s: %w", path, err)
	}
	summary, err := Export(ctx, s, c, file)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		return Summary{}, fmt.Errorf("backup: closing %s: %w", path, closeErr)
	}
	return summary, err
}

// Import reads an archive from r, verifies its checksum, and
// replaces the store's user and request collections with the
// archived ones. The current session is untouched.
func Import(ctx context.Context, s store.Store, r io.Reader) (Summary, error) {
	body, err := decode(r)
	if err != nil {
		return Summary{}, err
	}

	for i := range body.Users {
		if err := body.Users[i].Validate(); err != nil {
			return Summary{}, fmt.Errorf("backup: archived user: %w", err)
		}
	}
	for i := range body.Requests {
		if err := body.Requests[i].Validate(); err != nil {
			return Summary{}, fmt.Errorf("backup: archived request: %w", err)
		}
	}

	if err := s.SetUsers(ctx, body.Users); err != nil {
		return Summary{}, fmt.Errorf("backup: restoring users: %w", err)
	}
	if err := s.SetRequests(ctx, body.Requests); err != nil {
		return Summary{}, fmt.Errorf("backup: restoring requests: %w", err)
	}
	return Summary{CreatedAt: body.CreatedAt, Users: len(body.Users), Requests: len(body.Requests)}, nil
}

// ImportFile imports the archive at path.
func ImportFile(ctx context.Context, s store.Store, path string) (Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("backup: opening %s: %w", path, err)
	}
	defer file.Close()
	return Import(ctx, s, file)
}

// Inspect reads an archive without touching any store.
func Inspect(r io.Reader) (Summary, error) {
	body, err := decode(r)
	if err != nil {
		return Summary{}, err
	}
	return Summary{CreatedAt: body.CreatedAt, Users: len(body.Users), Requests: len(body.Requests)}, nil
}

// decode parses and verifies an archive stream.
func decode(r io.Reader) (payload, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return payload{}, fmt.Errorf("backup: reading archive: %w", err)
	}
	if len(raw) < len(magic)+checksumSize || !bytes.Equal(raw[:len(magic)], magic) {
		return payload{}, ErrFormat
	}

	stored := raw[len(magic) : len(magic)+checksumSize]
	compressed := raw[len(magic)+checksumSize:]

	computed := blake3.Sum256(compressed)
	if !bytes.Equal(stored, computed[:]) {
		return payload{}, fmt.Errorf("backup: checksum mismatch: %w", ErrCorrupt)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return payload{}, fmt.Errorf("backup: initializing decompressor: %w", err)
	}
	defer decoder.Close()

	encoded, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return payload{}, fmt.Errorf("backup: decompressing: %w", ErrCorrupt)
	}

	var body payload
	if err := codec.Unmarshal(encoded, &body); err != nil {
		return payload{}, fmt.Errorf("backup: decoding: %w", ErrCorrupt)
	}
	return body, nil
}
