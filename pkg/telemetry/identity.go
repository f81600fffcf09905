package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
)

// fallbackNodeID is the single identifier shared by every installation that
// cannot persist state. Failing to persist must never fall back to a fresh
// per-process random value: that would still be transmitted while defeating
// the point of a stable identifier and inflating unique-install counts.
const fallbackNodeID = "f81f8c4e-6da8-4f38-9cd9-4aed1e09cb91"

// nodeIDFileName is the per-installation file holding the node identifier.
const nodeIDFileName = "telemetry.uuid"

// identityStore lazily resolves the durable node identity for one
// installation. Resolution happens at most once per store; the result is
// immutable afterwards and safe for unsynchronized concurrent reads.
type identityStore struct {
	path string
	once sync.Once
	id   string
}

func newIdentityStore(stateDir string) *identityStore {
	return &identityStore{path: filepath.Join(stateDir, nodeIDFileName)}
}

// NodeID returns the node identifier, resolving and persisting it on first
// use. Idempotent and thread-safe.
func (s *identityStore) NodeID() string {
	s.once.Do(func() {
		s.id = s.resolve()
	})
	return s.id
}

func (s *identityStore) resolve() string {
	if id, ok := readNodeID(s.path); ok {
		return id
	}

	fresh := uuid.New().String()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fallbackNodeID
	}
	if err := atomic.WriteFile(s.path, strings.NewReader(fresh+"\n")); err != nil {
		return fallbackNodeID
	}
	// Node identity must only be readable by the owner.
	_ = os.Chmod(s.path, 0o600)

	// Last writer wins and readers re-check: a concurrent first-time writer
	// may have replaced the file between our write and now. Adopting
	// whatever the file holds makes all processes converge on one value.
	if id, ok := readNodeID(s.path); ok {
		return id
	}
	return fallbackNodeID
}

// readNodeID reads a previously persisted identifier. A missing or
// malformed file is not an error, just absence.
func readNodeID(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// NewSessionID returns a fresh identifier for this process instance.
// Uniqueness is best effort; collisions are acceptable.
func NewSessionID() string {
	return uuid.New().String()
}
