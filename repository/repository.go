package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"depin-monitor/db"
	"depin-monitor/models"
)

// ErrNotFound is returned when no record exists under the requested id
var ErrNotFound = errors.New("not found")

const (
	nodePrefix        = "node:"
	opportunityPrefix = "opportunity:"
	earningsPrefix    = "earnings:"
	protocolPrefix    = "protocol:"
)

// It abstracts the storage layer from the dashboard logic
type RepositoryInterface interface {
	PutNode(node *models.Node) error
	GetNode(id string) (*models.Node, error)
	GetAllNodes() ([]models.Node, error)
	PutOpportunity(w *models.OpportunityWindow) error
	GetAllOpportunities() ([]models.OpportunityWindow, error)
	PutEarnings(r *models.EarningsReport) error
	GetAllEarnings() ([]models.EarningsReport, error)
	PutProtocol(p *models.Protocol) error
	GetAllProtocols() ([]models.Protocol, error)
	Clear() error
}

// Repository implements RepositoryInterface on top of LevelDB
type Repository struct {
	db *db.LevelDB
}

// NewRepository creates and returns a new Repository instance
func NewRepository(db *db.LevelDB) *Repository {
	return &Repository{db: db}
}

// PutNode validates and stores a node, replacing any node with the same id
func (r *Repository) PutNode(node *models.Node) error {
	return r.put(nodePrefix, node.NodeID, node)
}

// GetNode retrieves a node by its id
func (r *Repository) GetNode(id string) (*models.Node, error) {
	var node models.Node
	if err := r.get(nodePrefix, id, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// GetAllNodes returns every node in id order
func (r *Repository) GetAllNodes() ([]models.Node, error) {
	return getAll[models.Node](r, nodePrefix)
}

// PutOpportunity validates and stores an opportunity window
func (r *Repository) PutOpportunity(w *models.OpportunityWindow) error {
	return r.put(opportunityPrefix, w.OpportunityID, w)
}

// GetAllOpportunities returns every opportunity window in id order
func (r *Repository) GetAllOpportunities() ([]models.OpportunityWindow, error) {
	return getAll[models.OpportunityWindow](r, opportunityPrefix)
}

// PutEarnings validates and stores an earnings report
func (r *Repository) PutEarnings(report *models.EarningsReport) error {
	return r.put(earningsPrefix, report.ReportID, report)
}

// GetAllEarnings returns every earnings report in id order
func (r *Repository) GetAllEarnings() ([]models.EarningsReport, error) {
	return getAll[models.EarningsReport](r, earningsPrefix)
}

// PutProtocol validates and stores a protocol
func (r *Repository) PutProtocol(p *models.Protocol) error {
	return r.put(protocolPrefix, p.ProtocolID, p)
}

// GetAllProtocols returns every protocol in id order
func (r *Repository) GetAllProtocols() ([]models.Protocol, error) {
	return getAll[models.Protocol](r, protocolPrefix)
}

// Clear removes every record so the data source can reload the store wholesale
func (r *Repository) Clear() error {
	for _, prefix := range []string{nodePrefix, opportunityPrefix, earningsPrefix, protocolPrefix} {
		iter := r.db.NewPrefixIterator([]byte(prefix))
		var keys [][]byte
		for iter.Next() {
			keys = append(keys, append([]byte(nil), iter.Key()...))
		}
		err := iter.Error()
		iter.Release()
		if err != nil {
			return err
		}

		for _, key := range keys {
			if err := r.db.Delete(key); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
	}
	return nil
}

func (r *Repository) put(prefix, id string, v any) error {
	if err := models.Validate(v); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.db.Put([]byte(prefix+id), data)
}

func (r *Repository) get(prefix, id string, v any) error {
	data, err := r.db.Get([]byte(prefix + id))
	if db.IsNotFound(err) {
		return fmt.Errorf("%s%s: %w", prefix, id, ErrNotFound)
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func getAll[T any](r *Repository, prefix string) ([]T, error) {
	iter := r.db.NewPrefixIterator([]byte(prefix))
	defer iter.Release()

	out := []T{}
	for iter.Next() {
		var v T
		if err := json.Unmarshal(iter.Value(), &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", iter.Key(), err)
		}
		out = append(out, v)
	}
	return out, iter.Error()
}
