//go:build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	perr "sttsynth/internal/platform/errors"
	"sttsynth/internal/platform/store"
	"sttsynth/internal/services/corpus/domain"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "corpus",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/corpus?sslmode=disable", host, port.Port())

	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, AppName: "sttsynth-test", ConnectRetries: 5}})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}

func TestPG_RoundTrip_Integration(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	s := NewPG(st.PG, 2)

	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	// twice is fine
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema again: %v", err)
	}

	b := batch(3, domain.SplitTrain)
	if err := s.WriteSplit(ctx, b); err != nil {
		t.Fatalf("write: %v", err)
	}

	var n int
	var label string
	if err := st.PG.QueryRow(ctx,
		`SELECT count(*), min(entities->0->>'label') FROM corpus_records WHERE run_id = $1 AND split = 'train'`, "run-1",
	).Scan(&n, &label); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 || label != "PERSON_NAME" {
		t.Fatalf("n=%d label=%q", n, label)
	}

	if err := s.WriteSplit(ctx, batch(1, domain.SplitTrain)); !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("expected duplicate key got %v", err)
	}

	if err := s.WriteManifest(ctx, domain.Manifest{RunID: "run-1", Seed: 42, CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("manifest: %v", err)
	}
}
