package pilot

import (
	"bytes"
	"context"
	"errors"
	"strconv"

	"github.com/apex/log"
	"github.com/minerguide/pilotd/pkg/eveapi"
	"github.com/minerguide/pilotd/pkg/implant"
)

var errNoOwner = errors.New("pilot has no api key")

const (
	skillsRowset   = "skills"
	implantsRowset = "implants"
)

// replacement is a complete pilot state built off to the side of the pilot
// so that it can be swapped in with a single assignment.
type replacement struct {
	skills   map[int]int
	implants [3]*implant.Implant
}

// Refresh reloads the pilot's skills and implants from the character sheet
// of the EVE API. Exactly one request is made through f. Either every field
// is replaced or none is; on failure a *RefreshError describes why.
//
// Implants that catalog doesn't know are left out. Skill levels are taken
// as sent by the API.
func (p *Pilot) Refresh(ctx context.Context, f eveapi.Fetcher, catalog implant.Catalog) error {
	l := log.WithFields(log.Fields{"pilot": p.id})

	if p.owner == nil {
		return p.fail(FetchFailed, errNoOwner, "")
	}

	params := eveapi.KeyParams(p.owner.KeyID(), p.owner.Verification())
	params["characterID"] = strconv.Itoa(p.id)
	l = l.WithField("key", p.owner.KeyID())

	body, err := f.Fetch(ctx, eveapi.CharacterSheetPath, params)
	if err != nil {
		l.Errorf("Unable to fetch character sheet: %s", err)
		return p.fail(FetchFailed, err, "")
	}

	if len(bytes.TrimSpace(body)) == 0 {
		l.Errorf("Empty character sheet")
		return p.fail(FetchFailed, eveapi.ErrEmptyResponse, "")
	}

	sheet, err := eveapi.Parse(body)
	if err != nil {
		l.Errorf("Unable to parse character sheet: %s", err)
		return p.fail(ParseFailed, err, "")
	}

	if sheet.Error != nil {
		code, err := sheet.Error.CodeInt()
		if err != nil {
			l.Errorf("Unable to read API error: %s", err)
			return p.fail(MalformedData, err, "")
		}

		l.Warnf("Unable to fetch character sheet, error #%d: %s", code, sheet.Error.Text)
		return &RefreshError{
			State: RemoteError,
			Pilot: p.name,
			Code:  code,
			Text:  sheet.Error.Text,
			Err:   &eveapi.APIError{Code: code, Text: sheet.Error.Text},
		}
	}

	if sheet.Result == nil {
		l.Errorf("Character sheet has no result")
		return p.fail(MalformedData, nil, "")
	}

	skills := sheet.Result.Rowset(skillsRowset)
	implants := sheet.Result.Rowset(implantsRowset)

	switch {
	case skills == nil:
		l.Warnf("Character sheet has no skills")
		return p.fail(MissingSkills, nil, skillsRowset)
	case implants == nil:
		l.Warnf("Character sheet has no implants")
		return p.fail(MissingImplants, nil, implantsRowset)
	}

	next, err := buildReplacement(skills, implants, catalog)
	if err != nil {
		l.Errorf("Bad row in character sheet: %s", err)
		return p.fail(MalformedData, err, "")
	}

	p.locked(func() {
		p.skills = next.skills
		p.implants = next.implants
	})

	l.Debugf("Refreshed %d skills", len(next.skills))

	return nil
}

func buildReplacement(skills, implants *eveapi.Rowset, catalog implant.Catalog) (*replacement, error) {
	next := &replacement{
		skills:   make(map[int]int, len(skills.Rows)),
		implants: emptySlots(),
	}

	for _, row := range skills.Rows {
		id, err := row.Int("typeID")
		if err != nil {
			return nil, err
		}

		level, err := row.Int("level")
		if err != nil {
			return nil, err
		}

		next.skills[id] = level
	}

	for _, row := range implants.Rows {
		id, err := row.Int("typeID")
		if err != nil {
			return nil, err
		}

		if imp, ok := lookupImplant(catalog, id); ok {
			idx, _ := slotIndex(imp.Slot)
			next.implants[idx] = imp
		}
	}

	return next, nil
}

func (p *Pilot) fail(state RefreshState, err error, section string) *RefreshError {
	return &RefreshError{
		State:   state,
		Pilot:   p.name,
		Section: section,
		Err:     err,
	}
}
