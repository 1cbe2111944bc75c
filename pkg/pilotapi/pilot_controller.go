package pilotapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/minerguide/pilotd/pkg/implant"
	"github.com/minerguide/pilotd/pkg/pilot"
	"github.com/minerguide/pilotd/pkg/roster"
)

type PilotController struct {
	roster *roster.Roster
}

func NewPilotController(r *roster.Roster) *PilotController {
	return &PilotController{roster: r}
}

func (c *PilotController) ListPilots(ctx echo.Context) error {
	pilots := c.roster.List()
	summaries := make([]PilotSummary, 0, len(pilots))
	for _, p := range pilots {
		summaries = append(summaries, toSummary(p))
	}

	return ctx.JSON(http.StatusOK, summaries)
}

func (c *PilotController) GetPilot(ctx echo.Context) error {
	p, err := c.pilotFromParam(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toView(p))
}

func (c *PilotController) GetPilotBySlug(ctx echo.Context) error {
	p, ok := c.roster.GetBySlug(ctx.Param("slug"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no such pilot")
	}

	return ctx.JSON(http.StatusOK, toView(p))
}

func (c *PilotController) GetPilotDocument(ctx echo.Context) error {
	p, err := c.pilotFromParam(ctx)
	if err != nil {
		return err
	}

	doc, err := p.Marshal()
	if err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, doc)
}

// SetSkillLevel sets one skill. Out of range or missing levels leave the
// pilot as it was; the response is the pilot either way.
func (c *PilotController) SetSkillLevel(ctx echo.Context) error {
	var req struct {
		Level *int `json:"level"`
	}

	p, err := c.pilotFromParam(ctx)
	if err != nil {
		return err
	}

	skillID, err := intParam(ctx, "skill")
	if err != nil {
		return err
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if req.Level == nil {
		return ctx.JSON(http.StatusOK, toView(p))
	}

	p.SetSkillLevel(skillID, *req.Level)
	if err := c.roster.Save(p.ID()); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toView(p))
}

// SetImplant puts a catalog implant into a slot. An implant_id of 0 empties
// the slot. Unknown implants and implants for another slot are ignored.
func (c *PilotController) SetImplant(ctx echo.Context) error {
	var req struct {
		ImplantID int `json:"implant_id"`
	}

	p, err := c.pilotFromParam(ctx)
	if err != nil {
		return err
	}

	slot, err := intParam(ctx, "slot")
	if err != nil {
		return err
	}

	if !implant.IsValidSlot(slot) {
		return echo.NewHTTPError(http.StatusBadRequest, "slot must be one of 7, 8 or 10")
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	imp := implant.Nothing
	if req.ImplantID != 0 {
		found, ok := c.roster.Catalog().Lookup(req.ImplantID)
		if !ok {
			log.Debugf("Ignoring unknown implant %d for pilot %d", req.ImplantID, p.ID())
			return ctx.JSON(http.StatusOK, toView(p))
		}
		imp = found
	}

	p.SetImplant(slot, imp)
	if err := c.roster.Save(p.ID()); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toView(p))
}

func (c *PilotController) RefreshPilot(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.roster.Refresh(ctx.Request().Context(), id); err != nil {
		return refreshHTTPError(err)
	}

	p, ok := c.roster.Get(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no such pilot")
	}

	return ctx.JSON(http.StatusOK, toView(p))
}

func refreshHTTPError(err error) error {
	if errors.Is(err, roster.ErrUnknownPilot) {
		return echo.NewHTTPError(http.StatusNotFound, "no such pilot")
	}

	var refreshErr *pilot.RefreshError
	if !errors.As(err, &refreshErr) {
		return err
	}

	switch refreshErr.State {
	case pilot.FetchFailed, pilot.ParseFailed, pilot.RemoteError:
		return echo.NewHTTPError(http.StatusBadGateway, refreshErr.Error())
	default:
		return echo.NewHTTPError(http.StatusUnprocessableEntity, refreshErr.Error())
	}
}

func (c *PilotController) pilotFromParam(ctx echo.Context) (*pilot.Pilot, error) {
	id, err := intParam(ctx, "id")
	if err != nil {
		return nil, err
	}

	p, ok := c.roster.Get(id)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "no such pilot")
	}

	return p, nil
}

func intParam(ctx echo.Context, name string) (int, error) {
	value, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}

	return value, nil
}
