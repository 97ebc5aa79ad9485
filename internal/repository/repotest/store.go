// Package repotest provides in-memory repositories for tests of the layers
// above the store.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/repository"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/util"
)

// Store holds the shared state behind the fake repositories. Setting Err
// makes every repository call fail with it.
type Store struct {
	mu        sync.Mutex
	brokers   []model.Broker
	customers []model.Customer
	events    []model.CustomerEvent

	Err error
}

func New() *Store { return &Store{} }

func (s *Store) Brokers() *Brokers     { return &Brokers{s} }
func (s *Store) Customers() *Customers { return &Customers{s} }
func (s *Store) Stats() *Stats         { return &Stats{s} }
func (s *Store) Events() *Events       { return &Events{s} }

func (s *Store) SetErr(err error) {
	s.mu.Lock()
	s.Err = err
	s.mu.Unlock()
}

// BrokerCount and CustomerCount expose row counts for assertions.
func (s *Store) BrokerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.brokers)
}

func (s *Store) CustomerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.customers)
}

// AddBroker inserts b as-is, assigning an id if missing.
func (s *Store) AddBroker(b model.Broker) model.Broker {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		b.ID = util.NewID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	s.brokers = append(s.brokers, b)
	return b
}

// AddCustomer inserts c as-is, assigning an id if missing.
func (s *Store) AddCustomer(c model.Customer) model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = util.NewID()
	}
	if c.Status == "" {
		c.Status = model.StatusPending
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.customers = append(s.customers, c)
	return c
}

type Brokers struct{ s *Store }

var _ repository.BrokersRepository = (*Brokers)(nil)

func (r *Brokers) GetByID(_ context.Context, id string) (*model.Broker, error) {
	return r.find(func(b model.Broker) bool { return b.ID == id })
}

func (r *Brokers) GetByEmail(_ context.Context, email string) (*model.Broker, error) {
	return r.find(func(b model.Broker) bool { return b.Email == email })
}

func (r *Brokers) find(match func(model.Broker) bool) (*model.Broker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, b := range r.s.brokers {
		if match(b) {
			out := b
			return &out, nil
		}
	}
	return nil, nil
}

func (r *Brokers) Create(_ context.Context, b *model.Broker) (*model.Broker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, x := range r.s.brokers {
		if x.Email == b.Email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	out := *b
	out.ID = util.NewID()
	out.CreatedAt = time.Now().UTC()
	r.s.brokers = append(r.s.brokers, out)
	return &out, nil
}

func (r *Brokers) ListWithCustomerCount(_ context.Context) ([]model.BrokerWithCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]model.BrokerWithCount, 0)
	for _, b := range r.s.brokers {
		if b.IsAdmin {
			continue
		}
		row := model.BrokerWithCount{Broker: b}
		row.PasswordHash = ""
		for _, c := range r.s.customers {
			if c.BrokerID == b.ID {
				row.CustomerCount++
			}
		}
		out = append(out, row)
	}
	return out, nil
}

type Customers struct{ s *Store }

var _ repository.CustomersRepository = (*Customers)(nil)

func (r *Customers) GetByID(_ context.Context, id string) (*model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, c := range r.s.customers {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *Customers) ListByBroker(_ context.Context, brokerID string) ([]model.Customer, error) {
	return r.list(func(c model.Customer) bool { return c.BrokerID == brokerID })
}

func (r *Customers) ListAll(_ context.Context) ([]model.Customer, error) {
	return r.list(func(model.Customer) bool { return true })
}

func (r *Customers) list(match func(model.Customer) bool) ([]model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]model.Customer, 0)
	for _, c := range r.s.customers {
		if match(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Create also records the "created" event, standing in for the
// outbox -> Kafka -> ClickHouse pipeline.
func (r *Customers) Create(_ context.Context, c *model.Customer, actorID string) (*model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := *c
	out.ID = util.NewID()
	out.Status = model.StatusPending
	out.CreatedAt = time.Now().UTC()
	r.s.customers = append(r.s.customers, out)
	r.s.events = append(r.s.events, model.CustomerEvent{
		ID: util.NewID(), CustomerID: out.ID, BrokerID: out.BrokerID, ActorID: actorID,
		Type: model.EventCustomerCreated, ToStatus: out.Status, OccurredAt: out.CreatedAt,
	})
	return &out, nil
}

func (r *Customers) UpdateStatus(_ context.Context, id string, status model.CustomerStatus, actorID string) (*model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for i := range r.s.customers {
		c := &r.s.customers[i]
		if c.ID != id {
			continue
		}
		if c.Status != status {
			r.s.events = append(r.s.events, model.CustomerEvent{
				ID: util.NewID(), CustomerID: c.ID, BrokerID: c.BrokerID, ActorID: actorID,
				Type: model.EventCustomerStatusChanged, FromStatus: c.Status, ToStatus: status,
				OccurredAt: time.Now().UTC(),
			})
			c.Status = status
		}
		out := *c
		return &out, nil
	}
	return nil, nil
}

type Stats struct{ s *Store }

var _ repository.StatsRepository = (*Stats)(nil)

func (r *Stats) Stats(_ context.Context) (model.Stats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return model.Stats{}, r.s.Err
	}
	var st model.Stats
	for _, b := range r.s.brokers {
		if !b.IsAdmin {
			st.TotalBrokers++
		}
	}
	for _, c := range r.s.customers {
		st.TotalCustomers++
		switch c.Status {
		case model.StatusActive:
			st.ActiveCustomers++
		case model.StatusPending:
			st.PendingCustomers++
		}
	}
	return st, nil
}

type Events struct{ s *Store }

var _ repository.CHEventsRepository = (*Events)(nil)

func (r *Events) ListByCustomer(_ context.Context, customerID string, limit int) ([]model.CustomerEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if limit <= 0 {
		limit = repository.DefaultEventsLimit
	}
	if limit > repository.MaxEventsLimit {
		limit = repository.MaxEventsLimit
	}
	out := make([]model.CustomerEvent, 0)
	for _, ev := range r.s.events {
		if ev.CustomerID == customerID {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Events) InsertBatch(_ context.Context, events []model.CustomerEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.events = append(r.s.events, events...)
	return nil
}
