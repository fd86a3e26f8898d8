package config

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "GO_ENV", "LOG_LEVEL", "BODY_LIMIT", "CORS_ALLOWED_ORIGINS",
	"STORE_DRIVER", "SQLITE_PATH", "STORE_TIMEOUT", "EVENT_SWEEP_INTERVAL", "NODE_ID",
	"SUPABASE_URL", "SUPABASE_KEY", "SUPABASE_SERVICE_ROLE_KEY",
	"AUTH_PROVIDER", "JWT_SECRET_KEY", "JWKS_URL", "AWS_COGNITO_REGION",
	"AWS_S3_REGION", "S3_BUCKET_NAME", "S3_PUBLIC_URL",
}

// clearEnv blanks every key Load reads so the host environment can't leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "2M", cfg.BodyLimit)
	assert.Equal(t, defaultCORSOrigins, cfg.CORSOrigins)
	assert.Equal(t, StoreSupabase, cfg.StoreDriver)
	assert.Equal(t, AuthSupabase, cfg.Auth.Provider)
	assert.Equal(t, 10*time.Second, cfg.StoreTimeout)
	assert.Zero(t, cfg.EventSweepInterval)
	assert.EqualValues(t, 1, cfg.NodeID)
	assert.Equal(t, "anon", cfg.Auth.JWTSecret)
	assert.False(t, cfg.UploadsEnabled())
}

func TestLoad_MissingSupabaseKeysReportedOnce(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, "missing required environment variables: SUPABASE_URL, SUPABASE_KEY", err.Error())
}

func TestLoad_SQLiteWithJWT(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("AUTH_PROVIDER", "jwt")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://byte.example.com, https://admin.example.com")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, "database.db", cfg.SQLitePath)
	assert.Equal(t, time.Hour, cfg.EventSweepInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://byte.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestLoad_JWTSecretFallsBackToSupabaseKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("AUTH_PROVIDER", "jwt")
	t.Setenv("SUPABASE_KEY", "anon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "anon", cfg.Auth.JWTSecret)

	t.Setenv("JWT_SECRET_KEY", "dedicated")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "dedicated", cfg.Auth.JWTSecret)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "log level",
			env:  map[string]string{"LOG_LEVEL": "verbose"},
			want: `invalid LOG_LEVEL value "verbose"`,
		},
		{
			name: "store driver",
			env:  map[string]string{"STORE_DRIVER": "mongo"},
			want: `invalid STORE_DRIVER value "mongo"`,
		},
		{
			name: "auth provider",
			env:  map[string]string{"STORE_DRIVER": "sqlite", "AUTH_PROVIDER": "ldap"},
			want: `invalid AUTH_PROVIDER value "ldap"`,
		},
		{
			name: "timeout",
			env:  map[string]string{"STORE_TIMEOUT": "soon"},
			want: "invalid STORE_TIMEOUT",
		},
		{
			name: "node id",
			env:  map[string]string{"NODE_ID": "one"},
			want: "invalid NODE_ID",
		},
		{
			name: "cognito region",
			env:  map[string]string{"STORE_DRIVER": "sqlite", "AUTH_PROVIDER": "cognito"},
			want: "missing required environment variables: AWS_COGNITO_REGION",
		},
		{
			name: "jwt key",
			env:  map[string]string{"STORE_DRIVER": "sqlite", "AUTH_PROVIDER": "jwt", "SUPABASE_KEY": ""},
			want: "missing required environment variables: JWT_SECRET_KEY or JWKS_URL",
		},
		{
			name: "bucket without region",
			env:  map[string]string{"STORE_DRIVER": "sqlite", "AUTH_PROVIDER": "jwt", "JWKS_URL": "https://x/jwks", "S3_BUCKET_NAME": "media"},
			want: "missing required environment variables: AWS_S3_REGION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
			t.Setenv("SUPABASE_KEY", "anon")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

type fakeSSM struct {
	pages []*ssm.GetParametersByPathOutput
	calls []*ssm.GetParametersByPathInput
	err   error
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	copied := *in
	f.calls = append(f.calls, &copied)
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func param(name, value string) types.Parameter {
	return types.Parameter{Name: aws.String(name), Value: aws.String(value)}
}

func TestExportParameters_Paginates(t *testing.T) {
	t.Setenv("BYTEAPI_TEST_PORT", "")
	t.Setenv("BYTEAPI_TEST_KEY", "")

	client := &fakeSSM{pages: []*ssm.GetParametersByPathOutput{
		{Parameters: []types.Parameter{param("/byteapi/prod/BYTEAPI_TEST_PORT", "8080")}, NextToken: aws.String("next")},
		{Parameters: []types.Parameter{param("/byteapi/prod/BYTEAPI_TEST_KEY", "k")}},
	}}

	err := ExportParameters(context.Background(), client, "/byteapi/prod")
	require.NoError(t, err)

	assert.Equal(t, "8080", os.Getenv("BYTEAPI_TEST_PORT"))
	assert.Equal(t, "k", os.Getenv("BYTEAPI_TEST_KEY"))

	require.Len(t, client.calls, 2)
	assert.Equal(t, "/byteapi/prod/", aws.ToString(client.calls[0].Path))
	assert.True(t, aws.ToBool(client.calls[0].WithDecryption))
	assert.Nil(t, client.calls[0].NextToken)
	assert.Equal(t, "next", aws.ToString(client.calls[1].NextToken))
}

func TestExportParameters_Error(t *testing.T) {
	client := &fakeSSM{err: errors.New("access denied")}

	err := ExportParameters(context.Background(), client, "/byteapi/prod/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
