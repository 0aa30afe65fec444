package handlers

import (
	"net/http"

	"github.com/appclacks/slo-server/pkg/slo/aggregates"
	"github.com/labstack/echo/v4"
	er "github.com/mcorbin/corbierror"
)

type RegisterSLOInput struct {
	Name        string                `json:"name" validate:"required,max=255"`
	Description string                `json:"description" validate:"omitempty,max=255"`
	Labels      map[string]string     `json:"labels"`
	Target      float64               `json:"target" validate:"required,gt=0,lte=100"`
	Window      aggregates.SLOWindow  `json:"window" validate:"required"`
	MetricKind  aggregates.MetricKind `json:"metric-kind" validate:"required"`
	Threshold   *float64              `json:"threshold"`
	Unit        string                `json:"unit"`
}

type UpdateSLOStatusInput struct {
	// bound from the path only, a name in the body must not override it
	Name         string  `param:"name" json:"-" validate:"required,max=255"`
	CurrentValue float64 `json:"current-value"`
	TotalEvents  int64   `json:"total-events" validate:"gte=0"`
	GoodEvents   int64   `json:"good-events" validate:"gte=0"`
	WindowHours  float64 `json:"window-hours" validate:"gte=0"`
}

type SLONameInput struct {
	Name string `param:"name" json:"-" validate:"required,max=255"`
}

type ListSLOsOutput struct {
	Result []aggregates.SLODefinition `json:"result"`
}

type ListSLOStatusesOutput struct {
	Result []aggregates.SLOStatus `json:"result"`
}

type BurnRateAlertsOutput struct {
	Result []aggregates.BurnRateAlert `json:"result"`
}

func (b *Builder) RegisterSLO(ec echo.Context) error {
	var payload RegisterSLOInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}

	definition := aggregates.SLODefinition{
		Name:       payload.Name,
		Labels:     payload.Labels,
		Target:     payload.Target,
		Window:     payload.Window,
		MetricKind: payload.MetricKind,
		Threshold:  payload.Threshold,
		Unit:       payload.Unit,
	}
	if payload.Description != "" {
		definition.Description = &payload.Description
	}
	if err := b.manager.RegisterSLO(ec.Request().Context(), definition); err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, NewResponse("SLO registered"))
}

func (b *Builder) UnregisterSLO(ec echo.Context) error {
	var payload SLONameInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}

	if err := b.manager.UnregisterSLO(ec.Request().Context(), payload.Name); err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, NewResponse("SLO deleted"))
}

func (b *Builder) ListSLOs(ec echo.Context) error {
	result := ListSLOsOutput{
		Result: b.manager.GetAllSLOs(),
	}
	return ec.JSON(http.StatusOK, result)
}

func (b *Builder) GetSLO(ec echo.Context) error {
	var payload SLONameInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}

	definition, err := b.manager.GetSLO(payload.Name)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, &definition)
}

func (b *Builder) UpdateSLOStatus(ec echo.Context) error {
	var payload UpdateSLOStatusInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}
	if payload.GoodEvents > payload.TotalEvents {
		return er.New("good events should not exceed total events", er.BadRequest, true)
	}

	status, err := b.manager.UpdateSLOStatus(payload.Name, payload.CurrentValue, payload.TotalEvents, payload.GoodEvents, payload.WindowHours)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, &status)
}

func (b *Builder) GetSLOStatus(ec echo.Context) error {
	var payload SLONameInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}

	status, err := b.manager.GetSLOStatus(payload.Name)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, &status)
}

// GetSLOBurnRates evaluates the fixed monitoring windows against the latest
// stored status of one SLO.
func (b *Builder) GetSLOBurnRates(ec echo.Context) error {
	var payload SLONameInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}

	alerts, err := b.manager.GetSLOBurnRates(payload.Name)
	if err != nil {
		return err
	}
	result := BurnRateAlertsOutput{
		Result: alerts,
	}
	return ec.JSON(http.StatusOK, result)
}

func (b *Builder) ListSLOStatuses(ec echo.Context) error {
	result := ListSLOStatusesOutput{
		Result: b.manager.GetAllSLOStatuses(),
	}
	return ec.JSON(http.StatusOK, result)
}

func (b *Builder) GetSLOSummary(ec echo.Context) error {
	summary := b.manager.GetSummary()
	return ec.JSON(http.StatusOK, &summary)
}
