package vexpool

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
)

// Role identifies which of the two global pools a caller wants: the
// background build pool or the latency-sensitive search pool.
type Role int

const (
	RoleBuild Role = iota
	RoleSearch
)

func (r Role) String() string {
	switch r {
	case RoleBuild:
		return "build"
	case RoleSearch:
		return "search"
	default:
		return "unknown"
	}
}

// poolName is used for worker thread naming and log lines.
func (r Role) poolName() string {
	return "vexpool_" + r.String()
}

// poolSlot holds one role's pool. Creation is serialized through mu;
// reads of an already-created pool are lock-free through the pointer.
type poolSlot struct {
	mu   sync.Mutex
	pool atomic.Pointer[ThreadPool]
}

// Registry holds at most one build pool and one search pool. The package
// level accessors operate on a process-wide default registry; tests and
// embedding code can construct their own to keep initialization races
// contained.
type Registry struct {
	slots [2]poolSlot
}

// NewRegistry returns a registry with no pools created yet.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) slot(role Role) *poolSlot {
	return &r.slots[role]
}

// Init creates the role's pool exactly once with numThreads workers. A
// non-positive count is logged and ignored. Calling Init again after the
// pool exists is a no-op that logs the existing size; it neither resizes
// nor errors.
func (r *Registry) Init(role Role, numThreads int) {
	if numThreads <= 0 {
		slog.Error("thread pool size must be positive",
			slog.String("pool", role.poolName()),
			slog.Int("requested", numThreads))
		return
	}

	s := r.slot(role)
	if s.pool.Load() == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.pool.Load() == nil {
			s.pool.Store(NewThreadPool(numThreads, role.poolName()))
			slog.Info("initialized global thread pool",
				slog.String("pool", role.poolName()),
				slog.Int("threads", numThreads))
			return
		}
	}
	slog.Info("global thread pool already initialized",
		slog.String("pool", role.poolName()),
		slog.Int("threads", s.pool.Load().Size()))
}

// SetSize resizes the role's pool, creating it first if it does not exist
// yet. The same positive-count validation as Init and SetNumThreads
// applies.
func (r *Registry) SetSize(role Role, numThreads int) {
	p := r.slot(role).pool.Load()
	if p == nil {
		r.Init(role, numThreads)
		return
	}
	p.SetNumThreads(numThreads)
	slog.Info("global thread pool size set",
		slog.String("pool", role.poolName()),
		slog.Int("threads", p.Size()))
}

// Get returns the role's shared pool, lazily creating it with one worker
// per hardware execution context if no explicit Init or SetSize came
// first. Concurrent first-time callers observe exactly one pool.
func (r *Registry) Get(role Role) *ThreadPool {
	if p := r.slot(role).pool.Load(); p != nil {
		return p
	}
	r.Init(role, runtime.NumCPU())
	return r.slot(role).pool.Load()
}

// Lookup peeks at the role's pool without creating it. It returns nil
// when the pool has not been initialized yet.
func (r *Registry) Lookup(role Role) *ThreadPool {
	return r.slot(role).pool.Load()
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry behind the package
// level accessors.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// InitGlobalBuildPool creates the global build pool with numThreads
// workers if it does not exist yet; the first successful call wins.
func InitGlobalBuildPool(numThreads int) {
	defaultRegistry.Init(RoleBuild, numThreads)
}

// InitGlobalSearchPool creates the global search pool with numThreads
// workers if it does not exist yet; the first successful call wins.
func InitGlobalSearchPool(numThreads int) {
	defaultRegistry.Init(RoleSearch, numThreads)
}

// SetGlobalBuildPoolSize resizes the global build pool, creating it on
// first configuration.
func SetGlobalBuildPoolSize(numThreads int) {
	defaultRegistry.SetSize(RoleBuild, numThreads)
}

// SetGlobalSearchPoolSize resizes the global search pool, creating it on
// first configuration.
func SetGlobalSearchPoolSize(numThreads int) {
	defaultRegistry.SetSize(RoleSearch, numThreads)
}

// GetGlobalBuildPool returns the shared build pool, creating it at the
// machine's hardware width on first use.
func GetGlobalBuildPool() *ThreadPool {
	return defaultRegistry.Get(RoleBuild)
}

// GetGlobalSearchPool returns the shared search pool, creating it at the
// machine's hardware width on first use.
func GetGlobalSearchPool() *ThreadPool {
	return defaultRegistry.Get(RoleSearch)
}
