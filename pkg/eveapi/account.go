package eveapi

import (
	"context"
	"fmt"
	"strconv"
)

const (
	APIKeyInfoPath     = "/account/APIKeyInfo.xml.aspx"
	CharacterSheetPath = "/char/CharacterSheet.xml.aspx"
)

// Fetcher is the transport side of the API. *Client and *MockClient satisfy it.
type Fetcher interface {
	Fetch(ctx context.Context, path string, params map[string]string) ([]byte, error)
}

// KeyParams returns the query parameters authenticating a request with an API key.
func KeyParams(keyID int, verification string) map[string]string {
	return map[string]string{
		"keyID": strconv.Itoa(keyID),
		"vCode": verification,
	}
}

// KeyCharacter is one character a key grants access to.
type KeyCharacter struct {
	ID   int
	Name string
}

// APIError is a well formed error answer from the API.
type APIError struct {
	Code int
	Text string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error #%d: %s", e.Code, e.Text)
}

// KeyCharacters lists the characters visible through an API key.
func KeyCharacters(ctx context.Context, f Fetcher, keyID int, verification string) ([]KeyCharacter, error) {
	body, err := f.Fetch(ctx, APIKeyInfoPath, KeyParams(keyID, verification))
	if err != nil {
		return nil, err
	}

	resp, err := Parse(body)
	if err != nil {
		return nil, err
	}

	if resp.Error != nil {
		code, err := resp.Error.CodeInt()
		if err != nil {
			return nil, err
		}
		return nil, &APIError{Code: code, Text: resp.Error.Text}
	}

	// APIKeyInfo nests the rowset inside <key>.
	rowset := resp.Result.keyRowset("characters")
	if rowset == nil {
		return nil, fmt.Errorf("%w: no characters rowset", ErrParse)
	}

	chars := make([]KeyCharacter, 0, len(rowset.Rows))
	for _, row := range rowset.Rows {
		id, err := row.Int("characterID")
		if err != nil {
			return nil, err
		}
		name, _ := row.Attr("characterName")
		chars = append(chars, KeyCharacter{ID: id, Name: name})
	}

	return chars, nil
}
