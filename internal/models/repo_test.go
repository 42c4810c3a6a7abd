package models

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return GormNewRepo(db)
}

func seedUser(t *testing.T, r *GormRepo, username string) *User {
	t.Helper()
	u, err := r.CreateUser(context.Background(), &User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		Role:     "user",
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedEvent(t *testing.T, r *GormRepo, creatorID uint, title string) *Event {
	t.Helper()
	e, err := r.CreateEvent(context.Background(), &Event{
		Title:     title,
		Location:  "Hall",
		EventDate: "2025-10-01",
		EventTime: "18:30",
		CreatorID: creatorID,
	})
	if err != nil {
		t.Fatalf("seed event %s: %v", title, err)
	}
	return e
}

func TestCreateUserDuplicateEmailIgnoresCase(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	seedUser(t, r, "alice")

	_, err := r.CreateUser(ctx, &User{Username: "alice2", Email: "ALICE@Example.com", Password: "x"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	_, err = r.CreateUser(ctx, &User{Username: "alice", Email: "other@example.com", Password: "x"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on username, got %v", err)
	}

	got, err := r.GetUserByEmail(ctx, " Alice@EXAMPLE.com ")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("got %q, want alice", got.Username)
	}
}

func TestUserLookups(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "bob")

	if _, err := r.GetUserByID(ctx, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("id 0: expected not found, got %v", err)
	}
	if _, err := r.GetUserByID(ctx, u.ID+100); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: expected not found, got %v", err)
	}
	if _, err := r.GetUserByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing username: expected not found, got %v", err)
	}
	if _, err := r.GetUserByUsernameAndEmail(ctx, "bob", "wrong@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("mismatched email: expected not found, got %v", err)
	}
	if _, err := r.GetUserByUsernameAndEmail(ctx, "bob", "BOB@example.com"); err != nil {
		t.Errorf("matching pair: %v", err)
	}

	if err := r.UpdatePassword(ctx, u.ID, "newhash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	got, _ := r.GetUserByID(ctx, u.ID)
	if got.Password != "newhash" {
		t.Errorf("password not updated: %q", got.Password)
	}
	if err := r.UpdatePassword(ctx, u.ID+100, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestResolveCategoryID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	id, err := r.ResolveCategoryID(ctx, "   ")
	if err != nil || id != nil {
		t.Fatalf("blank name should resolve to nil, got %v, %v", id, err)
	}

	first, err := r.ResolveCategoryID(ctx, "Music")
	if err != nil || first == nil {
		t.Fatalf("ResolveCategoryID(Music): %v, %v", first, err)
	}
	second, err := r.ResolveCategoryID(ctx, "  music ")
	if err != nil || second == nil {
		t.Fatalf("ResolveCategoryID(music): %v, %v", second, err)
	}
	if *first != *second {
		t.Errorf("case variants resolved to %d and %d", *first, *second)
	}

	cats, err := r.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Music" {
		t.Errorf("unexpected categories: %+v", cats)
	}
}

func TestResolveCategoryIDConcurrent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	const workers = 8
	ids := make([]uint, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "Sports"
			if i%2 == 0 {
				name = "SPORTS"
			}
			id, err := r.ResolveCategoryID(ctx, name)
			errs[i] = err
			if id != nil {
				ids[i] = *id
			}
		}(i)
	}
	wg.Wait()

	for i := range errs {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Errorf("worker %d resolved %d, want %d", i, ids[i], ids[0])
		}
	}
	var count int64
	r.db.Model(&Category{}).Count(&count)
	if count != 1 {
		t.Errorf("expected one category row, got %d", count)
	}
}

func TestUpsertRegistration(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "carol")
	e := seedEvent(t, r, u.ID, "Picnic")

	first, err := r.UpsertRegistration(ctx, u.ID, e.ID, StatusGoing)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	again, err := r.UpsertRegistration(ctx, u.ID, e.ID, StatusGoing)
	if err != nil {
		t.Fatalf("repeat upsert: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("repeat upsert created a new row: %d vs %d", again.ID, first.ID)
	}

	changed, err := r.UpsertRegistration(ctx, u.ID, e.ID, StatusMaybe)
	if err != nil {
		t.Fatalf("overwrite upsert: %v", err)
	}
	if changed.Status != StatusMaybe {
		t.Errorf("status = %q, want maybe", changed.Status)
	}
	if !changed.RegisteredAt.Equal(first.RegisteredAt) {
		t.Errorf("registeredAt changed from %v to %v", first.RegisteredAt, changed.RegisteredAt)
	}

	var count int64
	r.db.Model(&Registration{}).Where("user_id = ? AND event_id = ?", u.ID, e.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected one registration, got %d", count)
	}
}

func TestUpsertRegistrationConcurrent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "dave")
	e := seedEvent(t, r, u.ID, "Run")

	statuses := []RSVPStatus{StatusGoing, StatusMaybe, StatusNotGoing}
	var wg sync.WaitGroup
	for i := 0; i < 9; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := r.UpsertRegistration(ctx, u.ID, e.ID, statuses[i%3]); err != nil {
				t.Errorf("upsert %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	var regs []Registration
	r.db.Where("user_id = ? AND event_id = ?", u.ID, e.ID).Find(&regs)
	if len(regs) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(regs))
	}
	if !regs[0].Status.Valid() {
		t.Errorf("stored status %q is not valid", regs[0].Status)
	}
}

func TestDeleteRegistration(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "erin")
	e := seedEvent(t, r, u.ID, "Quiz")

	if _, err := r.UpsertRegistration(ctx, u.ID, e.ID, StatusGoing); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := r.DeleteRegistration(ctx, u.ID, e.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := r.DeleteRegistration(ctx, u.ID, e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected not found, got %v", err)
	}
}

func TestEventLifecycle(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	owner := seedUser(t, r, "frank")
	guest := seedUser(t, r, "gina")

	catID, err := r.ResolveCategoryID(ctx, "Tech")
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	limit := 2
	created, err := r.CreateEvent(ctx, &Event{
		Title:        "Go Meetup",
		Location:     "Lab",
		EventDate:    "2025-11-02",
		EventTime:    "19:00",
		CategoryID:   catID,
		CreatorID:    owner.ID,
		MaxAttendees: &limit,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if created.Category == nil || created.Category.Name != "Tech" {
		t.Errorf("category not preloaded: %+v", created.Category)
	}
	if created.Creator == nil || created.Creator.ID != owner.ID {
		t.Errorf("creator not preloaded: %+v", created.Creator)
	}

	if _, err := r.UpsertRegistration(ctx, guest.ID, created.ID, StatusGoing); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	attendees, err := r.ListAttendees(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListAttendees: %v", err)
	}
	if len(attendees) != 1 || attendees[0].Username != "gina" || attendees[0].Status != StatusGoing {
		t.Errorf("unexpected attendees: %+v", attendees)
	}

	updated, err := r.UpdateEvent(ctx, created.ID, EventFields{
		Title:     "Go Meetup #2",
		Location:  "Lab",
		EventDate: "2025-11-03",
		EventTime: "18:00",
	}, nil)
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.Title != "Go Meetup #2" || updated.CategoryID != nil || updated.MaxAttendees != nil {
		t.Errorf("unexpected update result: %+v", updated)
	}
	if len(updated.Registrations) != 1 || updated.Registrations[0].User == nil {
		t.Errorf("registrations not preloaded with users: %+v", updated.Registrations)
	}

	if _, err := r.UpdateEvent(ctx, created.ID+100, EventFields{Title: "x"}, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing: expected not found, got %v", err)
	}

	if err := r.DeleteEvent(ctx, created.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if _, err := r.GetEventByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected deleted event to be gone, got %v", err)
	}
	var regs int64
	r.db.Model(&Registration{}).Where("event_id = ?", created.ID).Count(&regs)
	if regs != 0 {
		t.Errorf("expected registrations to be deleted, %d left", regs)
	}
	if err := r.DeleteEvent(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected not found, got %v", err)
	}
}

func TestListEventsFilters(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "hank")

	music, _ := r.ResolveCategoryID(ctx, "Music")
	food, _ := r.ResolveCategoryID(ctx, "Food")
	fixtures := []Event{
		{Title: "Jazz Night", EventDate: "2025-10-02", EventTime: "20:00", CategoryID: music},
		{Title: "Rock Show", EventDate: "2025-10-01", EventTime: "21:00", CategoryID: music},
		{Title: "Taco Tuesday", EventDate: "2025-10-01", EventTime: "12:00", CategoryID: food},
	}
	for i := range fixtures {
		fixtures[i].Location = "Town"
		fixtures[i].CreatorID = u.ID
		if _, err := r.CreateEvent(ctx, &fixtures[i]); err != nil {
			t.Fatalf("create %s: %v", fixtures[i].Title, err)
		}
	}

	tests := []struct {
		name   string
		filter EventFilter
		want   []string
	}{
		{"all ordered by date then time", EventFilter{}, []string{"Taco Tuesday", "Rock Show", "Jazz Night"}},
		{"search ignores case", EventFilter{Search: "NIGHT"}, []string{"Jazz Night"}},
		{"category id", EventFilter{CategoryID: *food}, []string{"Taco Tuesday"}},
		{"category name ignores case", EventFilter{CategoryName: "mUsIc"}, []string{"Rock Show", "Jazz Night"}},
		{"date", EventFilter{Date: "2025-10-01"}, []string{"Taco Tuesday", "Rock Show"}},
		{"no match", EventFilter{Search: "opera"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := r.ListEvents(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListEvents: %v", err)
			}
			got := make([]string, 0, len(events))
			for _, e := range events {
				got = append(got, e.Title)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListEventsSearchIsLiteral(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r, "ivy")

	for _, title := range []string{"50% Off Sale", "Fun_Run", "Book Club", "Wow! Night"} {
		e := &Event{Title: title, Location: "Town", EventDate: "2025-10-01", EventTime: "10:00", CreatorID: u.ID}
		if _, err := r.CreateEvent(ctx, e); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	tests := []struct {
		search string
		want   []string
	}{
		{"%", []string{"50% Off Sale"}},
		{"_", []string{"Fun_Run"}},
		{"n_r", []string{"Fun_Run"}},
		{"!", []string{"Wow! Night"}},
		{"0%", []string{"50% Off Sale"}},
		{"b%k", []string{}},
	}
	for _, tt := range tests {
		events, err := r.ListEvents(ctx, EventFilter{Search: tt.search})
		if err != nil {
			t.Fatalf("ListEvents(%q): %v", tt.search, err)
		}
		got := make([]string, 0, len(events))
		for _, e := range events {
			got = append(got, e.Title)
		}
		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("search %q: got %v, want %v", tt.search, got, tt.want)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike("50%_off!"); got != "50!%!_off!!" {
		t.Errorf("escapeLike = %q", got)
	}
}
