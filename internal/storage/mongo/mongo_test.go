package mongo

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/models"
	"github.com/SonGokuFan1996/NeuroNet/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testTimeout — общий дедлайн на операции с БД в тестах.
const testTimeout = 10 * time.Second

// TestMain запускает MongoDB в контейнере один раз на весь пакет.
// Адрес прокидывается в ENV MONGO_URL, каждый тест создаёт свою БД (см. newTestMongo).
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("MONGO_URL", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// newTestMongo — подключение к отдельной БД с уникальным именем.
func newTestMongo(t *testing.T) *Mongo {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	base := strings.TrimSuffix(os.Getenv("MONGO_URL"), "/")
	uri := base + "/comments_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	})

	return m
}

// TestDatabaseFromURI — имя БД берётся из пути, иначе — значение по умолчанию.
func TestDatabaseFromURI(t *testing.T) {
	t.Parallel()

	require.Equal(t, "feed", databaseFromURI("mongodb://localhost:27017/feed"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017/"))
	require.Equal(t, defaultDBName, databaseFromURI("://bad"))
}

// TestNew_EmptyURL — пустой URL отклоняется до подключения.
func TestNew_EmptyURL(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), "")
	require.Error(t, err)
}

func TestIntegration_ListByPost_InsertionOrder(t *testing.T) {
	m := newTestMongo(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	require.NoError(t, m.InsertComments(ctx, []models.Comment{
		{ID: models.Ptr[int64](1), PostID: 7, UserID: "UserA", Content: "Totally agree!", CreatedAt: models.Ptr("10m ago")},
		{ID: models.Ptr[int64](2), PostID: 8, UserID: "UserC", Content: "other post"},
		{ID: models.Ptr[int64](3), PostID: 7, UserID: "UserB", Content: "This helps so much."},
	}))

	got, err := m.ListByPost(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "UserA", got[0].UserID)
	require.Equal(t, "10m ago", *got[0].CreatedAt)
	require.Equal(t, "UserB", got[1].UserID)
	require.Nil(t, got[1].CreatedAt)
	require.Nil(t, got[1].UserAvatar)

	empty, err := m.ListByPost(ctx, 99)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestIntegration_InvalidPostID(t *testing.T) {
	m := newTestMongo(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	_, err := m.ListByPost(ctx, 0)
	require.ErrorIs(t, err, storage.ErrInvalidArgument)

	err = m.InsertComments(ctx, []models.Comment{{Content: "orphan"}})
	require.ErrorIs(t, err, storage.ErrInvalidArgument)
}
