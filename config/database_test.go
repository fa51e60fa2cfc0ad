package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectDBRejectsBadURI(t *testing.T) {
	_, err := ConnectDB(context.Background(), &AppConfig{MongoURI: "not-a-mongo-uri", MongoMode: "local"})
	assert.Error(t, err)
}

func TestConnectDBFailsWhenServerIsDown(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := ConnectDB(ctx, &AppConfig{MongoURI: "mongodb://127.0.0.1:1", MongoMode: "local", MongoDatabase: "shopper"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping local MongoDB")
}

func TestConnectDBReturnsConfiguredDatabase(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := ConnectDB(ctx, &AppConfig{MongoURI: uri, MongoMode: "local", MongoDatabase: "shopper_config_test"})
	require.NoError(t, err)
	defer db.Client().Disconnect(context.Background())
	assert.Equal(t, "shopper_config_test", db.Name())
}
