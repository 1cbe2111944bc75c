package pilot

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/minerguide/pilotd/pkg/implant"
)

var ErrBadDocument = errors.New("bad pilot document")

// DocumentError reports a pilot document that can't be turned into a Pilot.
type DocumentError struct {
	Field  string
	Value  string
	Reason string
}

func (e *DocumentError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s %s", ErrBadDocument, e.Field, e.Reason)
	}

	return fmt.Sprintf("%s: %s %q %s", ErrBadDocument, e.Field, e.Value, e.Reason)
}

func (e *DocumentError) Is(target error) bool {
	return target == ErrBadDocument
}

// Document is the persisted form of a pilot:
//
//	<character id="90000001">
//	  <name>Miner Bob</name>
//	  <skills><skill id="3386" value="5"/></skills>
//	  <implants><implant id="22535"/></implants>
//	</character>
//
// Numbers are kept as text so a damaged document can be reported precisely.
type Document struct {
	XMLName  xml.Name   `xml:"character"`
	ID       string     `xml:"id,attr"`
	Name     string     `xml:"name"`
	Skills   SkillSet   `xml:"skills"`
	Implants ImplantSet `xml:"implants"`
}

type SkillSet struct {
	Entries []SkillEntry `xml:"skill"`
}

type ImplantSet struct {
	Entries []ImplantEntry `xml:"implant"`
}

type SkillEntry struct {
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

type ImplantEntry struct {
	ID string `xml:"id,attr"`
}

// Serialize captures the pilot as a Document. Skills and implants are read
// under one lock acquisition, so the document is a consistent snapshot.
func (p *Pilot) Serialize() *Document {
	doc := &Document{
		ID:   strconv.Itoa(p.id),
		Name: p.name,
	}

	var (
		skills   map[int]int
		implants [3]*implant.Implant
	)
	p.locked(func() {
		skills = copySkills(p.skills)
		implants = p.implants
	})

	ids := make([]int, 0, len(skills))
	for id := range skills {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		doc.Skills.Entries = append(doc.Skills.Entries, SkillEntry{
			ID:    strconv.Itoa(id),
			Value: strconv.Itoa(skills[id]),
		})
	}

	for _, imp := range implants {
		if imp.IsNothing() {
			continue
		}
		doc.Implants.Entries = append(doc.Implants.Entries, ImplantEntry{ID: strconv.Itoa(imp.ID)})
	}

	return doc
}

// Deserialize builds a pilot from doc. Implant ids the catalog doesn't know
// are dropped. A missing or malformed id, or a damaged skill or implant
// entry, fails with a *DocumentError.
func Deserialize(doc *Document, owner Credentials, catalog implant.Catalog) (*Pilot, error) {
	if doc == nil {
		return nil, &DocumentError{Field: "character", Reason: "is missing"}
	}

	if strings.TrimSpace(doc.ID) == "" {
		return nil, &DocumentError{Field: "character id", Reason: "is missing"}
	}

	id, err := strconv.Atoi(strings.TrimSpace(doc.ID))
	if err != nil {
		return nil, &DocumentError{Field: "character id", Value: doc.ID, Reason: "is not a number"}
	}

	p := New(id, doc.Name, owner)

	for _, entry := range doc.Skills.Entries {
		skillID, err := documentInt("skill id", entry.ID)
		if err != nil {
			return nil, err
		}

		level, err := documentInt("skill value", entry.Value)
		if err != nil {
			return nil, err
		}

		p.skills[skillID] = level
	}

	for _, entry := range doc.Implants.Entries {
		implantID, err := documentInt("implant id", entry.ID)
		if err != nil {
			return nil, err
		}

		if imp, ok := lookupImplant(catalog, implantID); ok {
			idx, _ := slotIndex(imp.Slot)
			p.implants[idx] = imp
		}
	}

	return p, nil
}

func documentInt(field, value string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &DocumentError{Field: field, Value: value, Reason: "is not a number"}
	}

	return i, nil
}

// lookupImplant resolves id in catalog, only accepting implants for one of
// the tracked slots.
func lookupImplant(catalog implant.Catalog, id int) (*implant.Implant, bool) {
	if catalog == nil {
		return nil, false
	}

	imp, ok := catalog.Lookup(id)
	if !ok || imp.IsNothing() {
		return nil, false
	}

	if _, ok := slotIndex(imp.Slot); !ok {
		return nil, false
	}

	return imp, true
}

// ReadDocument decodes a pilot document from r.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Join(ErrBadDocument, err)
	}

	return &doc, nil
}

// Unmarshal is ReadDocument followed by Deserialize.
func Unmarshal(data []byte, owner Credentials, catalog implant.Catalog) (*Pilot, error) {
	doc, err := ReadDocument(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return Deserialize(doc, owner, catalog)
}

// Marshal returns the indented XML form of the pilot.
func (p *Pilot) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.Serialize().WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (d *Document) WriteTo(w io.Writer) (int64, error) {
	b, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return 0, err
	}

	n, err := w.Write(b)
	return int64(n), err
}
