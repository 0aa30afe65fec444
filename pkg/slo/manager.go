package slo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/appclacks/slo-server/internal/util"
	"github.com/appclacks/slo-server/internal/validator"
	"github.com/appclacks/slo-server/pkg/slo/aggregates"
	er "github.com/mcorbin/corbierror"
)

// DefaultWindowHours is used when an update does not declare the length of
// the observation window.
const DefaultWindowHours = 24

type Store interface {
	CreateOrUpdateSLODefinition(ctx context.Context, definition aggregates.SLODefinition) error
	ListSLODefinitions(ctx context.Context) ([]*aggregates.SLODefinition, error)
	DeleteSLODefinition(ctx context.Context, name string) error
}

// StatusListener is notified with every stored status. The Prometheus
// exporter implements it.
type StatusListener interface {
	ObserveStatus(status aggregates.SLOStatus)
}

// Manager owns the SLO definitions and the latest computed status per SLO
// name. Statuses are kept in memory only, one per name, last writer wins.
type Manager struct {
	logger   *slog.Logger
	store    Store
	listener StatusListener

	mutex       sync.RWMutex
	definitions map[string]aggregates.SLODefinition
	evaluations map[string]evaluation
}

// evaluation keeps the latest status together with the budget and window
// that produced it, so burn rates can be derived without recomputing.
type evaluation struct {
	status      aggregates.SLOStatus
	budget      aggregates.ErrorBudget
	windowHours float64
}

// NewManager builds a manager seeded with the default platform catalog and
// any definition persisted in the store. Both store and listener may be nil.
func NewManager(ctx context.Context, logger *slog.Logger, store Store, listener StatusListener) (*Manager, error) {
	manager := &Manager{
		logger:      logger,
		store:       store,
		listener:    listener,
		definitions: make(map[string]aggregates.SLODefinition),
		evaluations: make(map[string]evaluation),
	}
	for _, definition := range DefaultCatalog() {
		manager.definitions[definition.Name] = definition
	}
	if store != nil {
		persisted, err := store.ListSLODefinitions(ctx)
		if err != nil {
			return nil, fmt.Errorf("fail to load persisted SLO definitions: %w", err)
		}
		persistedNames := make(map[string]bool, len(persisted))
		for i := range persisted {
			definition := *persisted[i]
			manager.definitions[definition.Name] = definition
			persistedNames[definition.Name] = true
		}
		// persisted definitions win over the catalog, missing catalog
		// entries are saved so unregistering them later works
		for name, definition := range manager.definitions {
			if persistedNames[name] {
				continue
			}
			if err := store.CreateOrUpdateSLODefinition(ctx, definition); err != nil {
				return nil, fmt.Errorf("fail to save the default SLO catalog: %w", err)
			}
		}
		logger.Info(fmt.Sprintf("loaded %d persisted SLO definitions", len(persisted)))
	}
	return manager, nil
}

func initSLODefinition(definition *aggregates.SLODefinition) {
	if definition.ID == "" {
		definition.ID = util.NewUUID()
	}
	if definition.CreatedAt.IsZero() {
		definition.CreatedAt = time.Now().UTC()
	}
}

// RegisterSLO upserts a definition. Registering an existing name replaces
// its definition and keeps any stored status for it.
func (m *Manager) RegisterSLO(ctx context.Context, definition aggregates.SLODefinition) error {
	m.logger.Info(fmt.Sprintf("registering SLO %s", definition.Name))
	if err := validator.Validator.Struct(definition); err != nil {
		return err
	}
	if err := definition.MetricKind.Validate(); err != nil {
		return err
	}
	if err := definition.Window.Validate(); err != nil {
		return err
	}
	if definition.MetricKind == aggregates.MetricKindLatency && definition.Threshold == nil {
		m.logger.Warn(fmt.Sprintf("latency SLO %s has no threshold, it will be evaluated like an availability SLO", definition.Name))
	}
	initSLODefinition(&definition)
	if m.store != nil {
		if err := m.store.CreateOrUpdateSLODefinition(ctx, definition); err != nil {
			return err
		}
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.definitions[definition.Name] = definition
	return nil
}

// UnregisterSLO removes a definition and its stored status.
func (m *Manager) UnregisterSLO(ctx context.Context, name string) error {
	m.logger.Info(fmt.Sprintf("unregistering SLO %s", name))
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.definitions[name]; !ok {
		return er.Newf("SLO not found: %s", er.NotFound, true, name)
	}
	if m.store != nil {
		if err := m.store.DeleteSLODefinition(ctx, name); err != nil {
			return err
		}
	}
	delete(m.definitions, name)
	delete(m.evaluations, name)
	return nil
}

// UpdateSLOStatus computes and stores the status of one SLO from observed
// counts. A windowHours of zero means DefaultWindowHours. The computation
// and the store happen under the lock so a status can never be paired with
// a definition replaced concurrently.
func (m *Manager) UpdateSLOStatus(name string, currentValue float64, totalEvents int64, goodEvents int64, windowHours float64) (aggregates.SLOStatus, error) {
	if windowHours == 0 {
		windowHours = DefaultWindowHours
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	definition, ok := m.definitions[name]
	if !ok {
		return aggregates.SLOStatus{}, er.Newf("SLO not found: %s", er.NotFound, true, name)
	}
	budget, err := CalculateErrorBudget(definition, totalEvents, goodEvents, windowHours)
	if err != nil {
		return aggregates.SLOStatus{}, err
	}
	status := EvaluateSLO(definition, currentValue, budget)
	m.evaluations[name] = evaluation{
		status:      status,
		budget:      budget,
		windowHours: windowHours,
	}
	if m.listener != nil {
		m.listener.ObserveStatus(status)
	}
	return status, nil
}

// GetSLO returns a registered definition.
func (m *Manager) GetSLO(name string) (aggregates.SLODefinition, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	definition, ok := m.definitions[name]
	if !ok {
		return aggregates.SLODefinition{}, er.Newf("SLO not found: %s", er.NotFound, true, name)
	}
	return definition, nil
}

// GetSLOStatus returns the latest status for one SLO, or a not found error
// when the SLO was never evaluated.
func (m *Manager) GetSLOStatus(name string) (aggregates.SLOStatus, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	evaluation, ok := m.evaluations[name]
	if !ok {
		return aggregates.SLOStatus{}, er.Newf("no status for SLO: %s", er.NotFound, true, name)
	}
	return evaluation.status, nil
}

// GetSLOBurnRates evaluates the fixed monitoring windows against the budget
// of the latest stored evaluation of one SLO.
func (m *Manager) GetSLOBurnRates(name string) ([]aggregates.BurnRateAlert, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	evaluation, ok := m.evaluations[name]
	if !ok {
		return nil, er.Newf("no status for SLO: %s", er.NotFound, true, name)
	}
	return CalculateBurnRateAlerts(evaluation.status.Definition, evaluation.budget, evaluation.windowHours), nil
}

// GetAllSLOs returns a snapshot of the registered definitions, in no
// particular order.
func (m *Manager) GetAllSLOs() []aggregates.SLODefinition {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	result := make([]aggregates.SLODefinition, 0, len(m.definitions))
	for _, definition := range m.definitions {
		result = append(result, definition)
	}
	return result
}

// GetAllSLOStatuses returns a snapshot of the stored statuses, in no
// particular order.
func (m *Manager) GetAllSLOStatuses() []aggregates.SLOStatus {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	result := make([]aggregates.SLOStatus, 0, len(m.evaluations))
	for _, evaluation := range m.evaluations {
		result = append(result, evaluation.status)
	}
	return result
}

// HasCriticalSLOs returns true when at least one stored status is critical.
func (m *Manager) HasCriticalSLOs() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for _, evaluation := range m.evaluations {
		if evaluation.status.AlertLevel == aggregates.AlertLevelCritical {
			return true
		}
	}
	return false
}

// GetSummary counts stored statuses by alert level.
func (m *Manager) GetSummary() aggregates.Summary {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	summary := aggregates.Summary{Total: len(m.evaluations)}
	for _, evaluation := range m.evaluations {
		switch evaluation.status.AlertLevel {
		case aggregates.AlertLevelOK:
			summary.OK++
		case aggregates.AlertLevelWarning:
			summary.Warning++
		case aggregates.AlertLevelCritical:
			summary.Critical++
		}
	}
	return summary
}
