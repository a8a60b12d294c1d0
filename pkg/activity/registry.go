package activity

import (
	"fmt"
	"sort"

	"github.com/apex/log"
	"github.com/mergington/activities/pkg/lock"
)

// Registry owns every activity for the lifetime of the process. The set of
// names is fixed when the registry is built, only rosters change. Roster
// changes for one activity are serialized; different activities never
// contend with each other.
type Registry struct {
	activities map[string]*Activity
	locker     *lock.NameLocker
}

// NewRegistry builds a registry from seed. The seed is copied, so the caller
// may keep using it.
func NewRegistry(seed map[string]Activity) (*Registry, error) {
	r := &Registry{
		activities: make(map[string]*Activity, len(seed)),
		locker:     lock.NewNameLocker(),
	}

	for name, a := range seed {
		if err := validateSeed(name, a); err != nil {
			return nil, err
		}

		stored := a.clone()
		r.activities[name] = &stored
	}

	return r, nil
}

func validateSeed(name string, a Activity) error {
	if name == "" {
		return fmt.Errorf("activity with blank name in seed")
	}

	if a.MaxParticipants <= 0 {
		return fmt.Errorf("activity %q: max_participants must be positive, got %d", name, a.MaxParticipants)
	}

	if len(a.Participants) > a.MaxParticipants {
		return fmt.Errorf("activity %q: %d participants exceeds max_participants %d", name, len(a.Participants), a.MaxParticipants)
	}

	seen := make(map[string]bool, len(a.Participants))
	for _, p := range a.Participants {
		if seen[p] {
			return fmt.Errorf("activity %q: participant %q listed twice", name, p)
		}
		seen[p] = true
	}

	return nil
}

// List returns a snapshot of every activity keyed by name.
func (r *Registry) List() map[string]Activity {
	all := make(map[string]Activity, len(r.activities))
	for name, a := range r.activities {
		all[name] = r.snapshot(name, a)
	}

	return all
}

// Get returns a snapshot of a single activity.
func (r *Registry) Get(name string) (Activity, error) {
	a, ok := r.activities[name]
	if !ok {
		return Activity{}, NotFoundError(DetailNotFound)
	}

	return r.snapshot(name, a), nil
}

func (r *Registry) snapshot(name string, a *Activity) Activity {
	r.locker.AcquireLock(name)
	defer r.locker.ReleaseLock(name)
	return a.clone()
}

// Names returns all activity names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.activities))
	for name := range r.activities {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Signup adds email to the roster of the named activity. Checks run in this
// order and the first failure is returned: email present, activity exists,
// email not yet on the roster, roster below capacity.
func (r *Registry) Signup(name, email string) (string, error) {
	err := r.transition(name, email, signupRules, func(a *Activity) {
		a.Participants = append(a.Participants, email)
	})

	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{"activity": name, "email": email}).Debug("signed up")
	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Unregister removes email from the roster of the named activity. Checks run
// in this order: email present, activity exists, email on the roster.
func (r *Registry) Unregister(name, email string) (string, error) {
	err := r.transition(name, email, unregisterRules, func(a *Activity) {
		i := a.indexOf(email)
		a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
	})

	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{"activity": name, "email": email}).Debug("unregistered")
	return fmt.Sprintf("Unregistered %s from %s", email, name), nil
}

// rosterRule inspects an activity under its lock. A non-nil error stops the
// transition before anything is mutated.
type rosterRule func(a *Activity, email string) error

var signupRules = []rosterRule{requireNotSignedUp, requireOpenSpot}

var unregisterRules = []rosterRule{requireSignedUp}

func requireNotSignedUp(a *Activity, email string) error {
	if a.HasParticipant(email) {
		return ConflictError(DetailAlreadySignedUp)
	}

	return nil
}

func requireOpenSpot(a *Activity, _ string) error {
	if len(a.Participants) >= a.MaxParticipants {
		return CapacityError(DetailAtCapacity)
	}

	return nil
}

func requireSignedUp(a *Activity, email string) error {
	if !a.HasParticipant(email) {
		return ConflictError(DetailNotSignedUp)
	}

	return nil
}

// transition runs the input checks shared by every roster change, then the
// activity specific rules and mutate while holding the activity's lock.
// The email check always comes before the lookup, so an empty email against
// an unknown activity is a validation error.
func (r *Registry) transition(name, email string, rules []rosterRule, mutate func(a *Activity)) error {
	if email == "" {
		return ValidationError(DetailEmailRequired)
	}

	a, ok := r.activities[name]
	if !ok {
		return NotFoundError(DetailNotFound)
	}

	return r.locker.WithLock(name, func() error {
		for _, rule := range rules {
			if err := rule(a, email); err != nil {
				return err
			}
		}

		mutate(a)
		return nil
	})
}
