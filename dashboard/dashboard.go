package dashboard

import (
	"errors"
	"fmt"
	"time"

	"depin-monitor/geo"
	"depin-monitor/health"
	"depin-monitor/logger"
	"depin-monitor/metrics"
	"depin-monitor/models"
	"depin-monitor/opportunity"
	"depin-monitor/proximity"
	"depin-monitor/repository"

	"go.uber.org/zap"
)

var ErrNodeNotFound = errors.New("node not found")

// Clock returns the current time. It is injected so every derived value is
// computed against one explicit reading.
type Clock func() time.Time

// Options tunes the service; zero fields fall back to defaults.
type Options struct {
	Thresholds  health.Thresholds
	NearbyLimit int
	USDRate     float64
	MapCenter   geo.GeoPoint
	Metrics     *metrics.Registry
}

const (
	defaultNearbyLimit = 5
	defaultUSDRate     = 45.2
)

// Service builds the dashboard views from the repository.
type Service struct {
	repo       repository.RepositoryInterface
	clock      Clock
	thresholds health.Thresholds
	limit      int
	usdRate    float64
	mapCenter  geo.GeoPoint
	metrics    *metrics.Registry
}

func NewService(repo repository.RepositoryInterface, clock Clock, opts Options) *Service {
	if clock == nil {
		clock = time.Now
	}
	if opts.Thresholds == (health.Thresholds{}) {
		opts.Thresholds = health.DefaultThresholds
	}
	if opts.NearbyLimit == 0 {
		opts.NearbyLimit = defaultNearbyLimit
	}
	if opts.USDRate == 0 {
		opts.USDRate = defaultUSDRate
	}
	return &Service{
		repo:       repo,
		clock:      clock,
		thresholds: opts.Thresholds,
		limit:      opts.NearbyLimit,
		usdRate:    opts.USDRate,
		mapCenter:  opts.MapCenter,
		metrics:    opts.Metrics,
	}
}

// NodeView is a node decorated with the values the dashboard renders.
type NodeView struct {
	models.Node
	TypeLabel      string      `json:"type_label"`
	ProtocolName   string      `json:"protocol_name,omitempty"`
	ProtocolColor  string      `json:"protocol_color,omitempty"`
	HealthTier     health.Tier `json:"health_tier"`
	LastUpdatedAgo string      `json:"last_updated_ago"`
	DistanceMeters *float64    `json:"distance_meters,omitempty"`
	Distance       string      `json:"distance,omitempty"`
}

// FormatAgo renders the age of a report: "Just now" under a minute, then
// whole minutes, hours or days. Negative ages count as just now.
func FormatAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}

// Protocols lists the networks nodes can earn on, in id order.
func (s *Service) Protocols() ([]models.Protocol, error) {
	return s.repo.GetAllProtocols()
}

func (s *Service) protocolIndex() (map[string]models.Protocol, error) {
	protocols, err := s.repo.GetAllProtocols()
	if err != nil {
		return nil, err
	}
	index := make(map[string]models.Protocol, len(protocols))
	for _, p := range protocols {
		index[p.ProtocolID] = p
	}
	return index, nil
}

func (s *Service) nodeView(r proximity.RankedNode, protocols map[string]models.Protocol, now time.Time) NodeView {
	v := NodeView{
		Node:           r.Node,
		TypeLabel:      r.Node.Type.Label(),
		HealthTier:     s.thresholds.Classify(r.Node.HealthScore),
		LastUpdatedAgo: FormatAgo(now.Sub(r.Node.LastUpdated)),
	}
	if p, ok := protocols[r.Node.ProtocolID]; ok {
		v.ProtocolName = p.Name
		v.ProtocolColor = p.Color
	} else {
		logger.Logger.Warn("Node references unknown protocol",
			zap.String("node_id", r.Node.NodeID),
			zap.String("protocol_id", r.Node.ProtocolID))
	}
	if r.HasDistance {
		d := r.DistanceMeters
		v.DistanceMeters = &d
		v.Distance = geo.FormatDistance(d)
	}
	return v
}

// NearbyNodes ranks nodes by distance from ref, nearest first. Without a
// reference the store order is kept. limit <= 0 uses the configured default.
func (s *Service) NearbyNodes(ref *geo.GeoPoint, limit int) ([]NodeView, error) {
	if ref != nil {
		if err := geo.ValidatePoint(*ref); err != nil {
			return nil, err
		}
	}
	if limit <= 0 {
		limit = s.limit
	}

	nodes, err := s.repo.GetAllNodes()
	if err != nil {
		return nil, err
	}
	protocols, err := s.protocolIndex()
	if err != nil {
		return nil, err
	}
	now := s.clock()

	ranked := proximity.Nearest(nodes, ref, limit)
	if ref != nil {
		s.metrics.RecordRanking()
	}

	views := make([]NodeView, len(ranked))
	for i, r := range ranked {
		views[i] = s.nodeView(r, protocols, now)
	}
	return views, nil
}

// GetNode returns a single node, with its distance from ref when given.
func (s *Service) GetNode(id string, ref *geo.GeoPoint) (*NodeView, error) {
	if ref != nil {
		if err := geo.ValidatePoint(*ref); err != nil {
			return nil, err
		}
	}

	node, err := s.repo.GetNode(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	protocols, err := s.protocolIndex()
	if err != nil {
		return nil, err
	}

	ranked := proximity.Rank([]models.Node{*node}, ref)
	v := s.nodeView(ranked[0], protocols, s.clock())
	return &v, nil
}

// OpportunityView is an active window joined with the node it applies to.
type OpportunityView struct {
	models.OpportunityWindow
	Node             *models.Node `json:"node,omitempty"`
	Title            string       `json:"title"`
	RemainingSeconds int64        `json:"remaining_seconds"`
	Remaining        string       `json:"remaining"`
}

// ActiveOpportunities lists the windows active at the current clock reading.
func (s *Service) ActiveOpportunities() ([]OpportunityView, error) {
	now := s.clock()
	return s.activeOpportunities(now)
}

func (s *Service) activeOpportunities(now time.Time) ([]OpportunityView, error) {
	windows, err := s.repo.GetAllOpportunities()
	if err != nil {
		return nil, err
	}

	active := opportunity.Active(windows, now)
	s.metrics.SetActiveOpportunities(len(active))

	views := make([]OpportunityView, 0, len(active))
	for _, w := range active {
		v := OpportunityView{
			OpportunityWindow: w,
			Title:             fmt.Sprintf("%gx Rewards Available!", w.RewardMultiplier),
		}
		remaining := opportunity.Remaining(w, now)
		v.RemainingSeconds = int64(remaining / time.Second)
		v.Remaining = opportunity.FormatRemaining(remaining)

		node, err := s.repo.GetNode(w.NodeID)
		if err != nil {
			logger.Logger.Warn("Opportunity references missing node",
				zap.String("opportunity_id", w.OpportunityID),
				zap.String("node_id", w.NodeID), zap.Error(err))
		} else {
			v.Node = node
		}
		views = append(views, v)
	}
	return views, nil
}

// EarningView is an earnings report with its estimated USD value.
type EarningView struct {
	models.EarningsReport
	USD float64 `json:"usd"`
}

func (s *Service) Earnings() ([]EarningView, error) {
	reports, err := s.repo.GetAllEarnings()
	if err != nil {
		return nil, err
	}
	views := make([]EarningView, len(reports))
	for i, r := range reports {
		views[i] = EarningView{EarningsReport: r, USD: r.Amount * s.usdRate}
	}
	return views, nil
}

// Overview holds the headline metrics of the dashboard.
type Overview struct {
	GeneratedAt         time.Time      `json:"generated_at"`
	MapCenter           geo.GeoPoint   `json:"map_center"`
	TotalEarnings       float64        `json:"total_earnings"`
	TotalEarningsUSD    float64        `json:"total_earnings_usd"`
	TotalNodes          int            `json:"total_nodes"`
	ActiveNodes         int            `json:"active_nodes"`
	Health              health.Summary `json:"health"`
	ActiveOpportunities int            `json:"active_opportunities"`
}

func (s *Service) Overview() (*Overview, error) {
	now := s.clock()

	nodes, err := s.repo.GetAllNodes()
	if err != nil {
		return nil, err
	}
	reports, err := s.repo.GetAllEarnings()
	if err != nil {
		return nil, err
	}
	windows, err := s.repo.GetAllOpportunities()
	if err != nil {
		return nil, err
	}

	o := &Overview{GeneratedAt: now, MapCenter: s.mapCenter, TotalNodes: len(nodes)}
	for _, r := range reports {
		o.TotalEarnings += r.Amount
	}
	o.TotalEarningsUSD = o.TotalEarnings * s.usdRate

	scores := make([]int, len(nodes))
	for i, n := range nodes {
		scores[i] = n.HealthScore
		if n.Status == models.NodeStatusActive {
			o.ActiveNodes++
		}
	}
	o.Health = s.thresholds.Summarize(scores)
	o.ActiveOpportunities = len(opportunity.Active(windows, now))

	tiers := make(map[string]int, len(o.Health.Tiers))
	for tier, n := range o.Health.Tiers {
		tiers[string(tier)] = n
	}
	s.metrics.SetHealthTiers(tiers)
	s.metrics.SetActiveOpportunities(o.ActiveOpportunities)

	return o, nil
}

// ClassifyHealth maps a score to a tier with the configured thresholds.
func (s *Service) ClassifyHealth(score int) (health.Tier, error) {
	if err := health.ValidateScore(score); err != nil {
		return "", err
	}
	return s.thresholds.Classify(score), nil
}

// Distance returns the great-circle distance between two validated points.
func (s *Service) Distance(from, to geo.GeoPoint) (float64, error) {
	if err := geo.ValidatePoint(from); err != nil {
		return 0, err
	}
	if err := geo.ValidatePoint(to); err != nil {
		return 0, err
	}
	return geo.DistanceMeters(from, to), nil
}
