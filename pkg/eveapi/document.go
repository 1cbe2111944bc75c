package eveapi

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrParse        = errors.New("eveapi: unable to parse response")
	ErrMalformedRow = errors.New("eveapi: malformed row")
)

// Response is the envelope every EVE XML API call answers with. Exactly one
// of Error and Result is normally present.
type Response struct {
	XMLName     xml.Name
	Version     string  `xml:"version,attr"`
	CurrentTime string  `xml:"currentTime"`
	Error       *Error  `xml:"error"`
	Result      *Result `xml:"result"`
	CachedUntil string  `xml:"cachedUntil"`
}

// Error is the <error code="..."> section of a response.
type Error struct {
	Code string `xml:"code,attr"`
	Text string `xml:",chardata"`
}

// CodeInt returns the numeric error code.
func (e *Error) CodeInt() (int, error) {
	code, err := strconv.Atoi(e.Code)
	if err != nil {
		return 0, fmt.Errorf("%w: error code %q is not a number", ErrMalformedRow, e.Code)
	}

	return code, nil
}

type Result struct {
	Key     *KeyInfo `xml:"key"`
	Rowsets []Rowset `xml:"rowset"`
}

// Rowset returns the first rowset called name, or nil.
func (r *Result) Rowset(name string) *Rowset {
	if r == nil {
		return nil
	}

	return findRowset(r.Rowsets, name)
}

func (r *Result) keyRowset(name string) *Rowset {
	if r == nil || r.Key == nil {
		return nil
	}

	return findRowset(r.Key.Rowsets, name)
}

// KeyInfo is the <key> element of an APIKeyInfo answer.
type KeyInfo struct {
	AccessMask string   `xml:"accessMask,attr"`
	Type       string   `xml:"type,attr"`
	Expires    string   `xml:"expires,attr"`
	Rowsets    []Rowset `xml:"rowset"`
}

func findRowset(rowsets []Rowset, name string) *Rowset {
	for i := range rowsets {
		if rowsets[i].Name == name {
			return &rowsets[i]
		}
	}

	return nil
}

type Rowset struct {
	Name    string `xml:"name,attr"`
	Key     string `xml:"key,attr"`
	Columns string `xml:"columns,attr"`
	Rows    []Row  `xml:"row"`
}

// Row keeps every attribute of a <row>; which ones exist depends on the rowset.
type Row struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func (r Row) Attr(name string) (string, bool) {
	for _, a := range r.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}

// Int returns the named attribute as an int. A missing or non-numeric
// attribute is reported as ErrMalformedRow.
func (r Row) Int(name string) (int, error) {
	val, ok := r.Attr(name)
	if !ok {
		return 0, fmt.Errorf("%w: no attribute %q", ErrMalformedRow, name)
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: attribute %s=%q is not a number", ErrMalformedRow, name, val)
	}

	return i, nil
}

// Parse decodes a raw API response. It only checks that the document is well
// formed XML; callers decide which sections they need.
func Parse(data []byte) (*Response, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyResponse
	}

	var resp Response
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, errors.Join(ErrParse, err)
	}

	return &resp, nil
}
