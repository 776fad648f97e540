// Package sharelink encodes a single account into a compact URL-safe payload.
//
// A share link looks like <app-url>#share:<payload> where the payload is the
// account JSON, deflated and base64url-encoded without padding. Decoding
// never mutates any ledger state; merging the decoded account is the
// service's job.
package sharelink

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/go-petr/lendbook/internal/domain"
)

// fragmentPrefix marks a share payload inside a URL fragment.
const fragmentPrefix = "#share:"

// Encode serializes the account to JSON, compresses it and encodes the
// result into the URL-safe base64 alphabet without padding.
func Encode(account domain.Account) (string, error) {
	data, err := json.Marshal(account)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}

	if _, err := w.Write(data); err != nil {
		return "", err
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode is the inverse of Encode.
//
// Any malformed payload (bad encoding, bad compression, bad JSON, or a
// record without a party) yields domain.ErrInvalidSharedAccount.
func Decode(payload string) (domain.Account, error) {
	var account domain.Account

	compressed, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return account, domain.ErrInvalidSharedAccount
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return account, domain.ErrInvalidSharedAccount
	}

	if err := json.Unmarshal(data, &account); err != nil {
		return domain.Account{}, domain.ErrInvalidSharedAccount
	}

	if strings.TrimSpace(account.Party) == "" {
		return domain.Account{}, domain.ErrInvalidSharedAccount
	}

	if account.Transactions == nil {
		account.Transactions = []domain.Transaction{}
	}

	return account, nil
}

// URL renders the full share link for the account.
func URL(appURL string, account domain.Account) (string, error) {
	payload, err := Encode(account)
	if err != nil {
		return "", err
	}

	return appURL + fragmentPrefix + payload, nil
}

// FromURL decodes an account from a share link or a bare payload.
func FromURL(link string) (domain.Account, error) {
	if i := strings.Index(link, fragmentPrefix); i >= 0 {
		link = link[i+len(fragmentPrefix):]
	}

	return Decode(link)
}
