package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/contactdesk/contactdesk/internal/core/domain"
	"github.com/contactdesk/contactdesk/internal/core/ports"
)

// stubUserRepo keeps principals in a map, keyed by id, with a username
// index.
type stubUserRepo struct {
	users  map[int64]domain.Principal
	nextID int64

	failWrites bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]domain.Principal), nextID: 1}
}

func (r *stubUserRepo) seed(username, password string, role domain.Role) *domain.Principal {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := domain.Principal{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	r.users[u.ID] = u
	r.nextID++
	out := u.Clone()
	return &out
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.Principal, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := u.Clone()
	return &out, nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.Principal, error) {
	for _, u := range r.users {
		if u.Username == username {
			out := u.Clone()
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.Principal, error) {
	out := make([]*domain.Principal, 0, len(r.users))
	for _, u := range r.users {
		clone := u.Clone()
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.Principal) (int64, error) {
	if r.failWrites {
		return 0, errors.New("write failed")
	}
	id := r.nextID
	r.nextID++
	stored := u.Clone()
	stored.ID = id
	r.users[id] = stored
	return id, nil
}

func (r *stubUserRepo) Restore(_ context.Context, u *domain.Principal) (int64, error) {
	if r.failWrites {
		return 0, errors.New("write failed")
	}
	if _, exists := r.users[u.ID]; exists {
		return 0, nil
	}
	r.users[u.ID] = u.Clone()
	if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	return 1, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.Principal) (int64, error) {
	if r.failWrites {
		return 0, errors.New("write failed")
	}
	if _, ok := r.users[u.ID]; !ok {
		return 0, nil
	}
	r.users[u.ID] = u.Clone()
	return 1, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) (int64, error) {
	if r.failWrites {
		return 0, errors.New("write failed")
	}
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	u.PasswordHash = passwordHash
	r.users[id] = u
	return 1, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) (int64, error) {
	if r.failWrites {
		return 0, errors.New("write failed")
	}
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

func (r *stubUserRepo) CountByRole(_ context.Context) (map[domain.Role]int64, error) {
	out := make(map[domain.Role]int64)
	for _, u := range r.users {
		out[u.Role]++
	}
	return out, nil
}

func newUserService(repo ports.UserRepository) *UserService {
	return NewUserService(repo, zerolog.Nop())
}

func TestUserAdd(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	u, err := svc.Add(context.Background(), ports.UserInput{
		Username:  "glhopper",
		Password:  "secret",
		FirstName: "Grace",
		LastName:  "Hopper",
		Role:      "Senior Developer",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if u.Role != domain.RoleSeniorDeveloper {
		t.Errorf("role = %q", u.Role)
	}
	if u.PasswordHash == "secret" {
		t.Error("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")) != nil {
		t.Error("hash does not verify against the original password")
	}
}

func TestUserAddRejectsDuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed("glhopper", "pw", domain.RoleTester)
	svc := newUserService(repo)

	_, err := svc.Add(context.Background(), ports.UserInput{
		Username:  "glhopper",
		Password:  "secret",
		FirstName: "Grace",
		LastName:  "Hopper",
		Role:      "Tester",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("want ErrUserExists, got %v", err)
	}
}

func TestUserAddRejectsUnknownRole(t *testing.T) {
	svc := newUserService(newStubUserRepo())

	_, err := svc.Add(context.Background(), ports.UserInput{
		Username:  "glhopper",
		Password:  "secret",
		FirstName: "Grace",
		LastName:  "Hopper",
		Role:      "Admiral",
	})
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Errorf("want ErrUnknownRole, got %v", err)
	}
}

func TestUserUpdatePromotesRole(t *testing.T) {
	repo := newStubUserRepo()
	seeded := repo.seed("glhopper", "pw", domain.RoleJuniorDeveloper)
	svc := newUserService(repo)

	role := "Senior Developer"
	updated, err := svc.Update(context.Background(), seeded.ID, ports.UserPatch{Role: &role})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Role != domain.RoleSeniorDeveloper {
		t.Errorf("role = %q, want Senior Developer", updated.Role)
	}
	if updated.Username != "glhopper" {
		t.Error("unset fields must keep their values")
	}
}

func TestUserUpdateRejectsEmptyPatch(t *testing.T) {
	repo := newStubUserRepo()
	seeded := repo.seed("glhopper", "pw", domain.RoleTester)
	svc := newUserService(repo)

	if _, err := svc.Update(context.Background(), seeded.ID, ports.UserPatch{}); !errors.Is(err, domain.ErrNoChanges) {
		t.Errorf("want ErrNoChanges, got %v", err)
	}
}

func TestUserDeleteRejectsSelf(t *testing.T) {
	repo := newStubUserRepo()
	manager := repo.seed("boss", "pw", domain.RoleManager)
	svc := newUserService(repo)

	if _, err := svc.Delete(context.Background(), manager, manager.ID); !errors.Is(err, domain.ErrSelfDelete) {
		t.Errorf("want ErrSelfDelete, got %v", err)
	}
	if svc.PendingDeleteUndos() != 0 {
		t.Error("rejected delete must not touch the ledger")
	}
	if _, err := repo.GetByID(context.Background(), manager.ID); err != nil {
		t.Error("rejected delete must not touch the store")
	}
}

func TestUserDeleteAndUndo(t *testing.T) {
	repo := newStubUserRepo()
	manager := repo.seed("boss", "pw", domain.RoleManager)
	victim := repo.seed("glhopper", "pw", domain.RoleSeniorDeveloper)
	svc := newUserService(repo)
	ctx := context.Background()

	deleted, err := svc.Delete(ctx, manager, victim.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.Username != "glhopper" {
		t.Error("Delete should return the pre-delete state")
	}
	if svc.PendingDeleteUndos() != 1 {
		t.Fatalf("PendingDeleteUndos = %d, want 1", svc.PendingDeleteUndos())
	}

	restored, err := svc.UndoLastDelete(ctx)
	if err != nil {
		t.Fatalf("UndoLastDelete: %v", err)
	}
	if restored.ID != victim.ID {
		t.Errorf("restored id = %d, want %d", restored.ID, victim.ID)
	}
	if restored.PasswordHash != victim.PasswordHash {
		t.Error("restore must keep the original password hash")
	}
	if restored.Role != domain.RoleSeniorDeveloper {
		t.Errorf("restored role = %q", restored.Role)
	}
}

func TestUserUndoOnEmptyLedger(t *testing.T) {
	svc := newUserService(newStubUserRepo())
	if _, err := svc.UndoLastDelete(context.Background()); !errors.Is(err, domain.ErrNothingToUndo) {
		t.Errorf("want ErrNothingToUndo, got %v", err)
	}
}

func TestUserRoleCounts(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed("a", "pw", domain.RoleTester)
	repo.seed("b", "pw", domain.RoleTester)
	repo.seed("c", "pw", domain.RoleManager)
	svc := newUserService(repo)

	counts, err := svc.RoleCounts(context.Background())
	if err != nil {
		t.Fatalf("RoleCounts: %v", err)
	}
	if counts[domain.RoleTester] != 2 {
		t.Errorf("testers = %d, want 2", counts[domain.RoleTester])
	}
	if counts[domain.RoleManager] != 1 {
		t.Errorf("managers = %d, want 1", counts[domain.RoleManager])
	}
}
