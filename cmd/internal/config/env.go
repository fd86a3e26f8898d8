package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	defaultParameterPath = "/byteapi/prod/"
	defaultSSMRegion     = "us-east-2"
)

// ParametersAPI is the subset of the SSM client used to export parameters.
type ParametersAPI interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// LoadEnv populates the process environment depending on GO_ENV: AWS SSM
// Parameter Store in production, an optional .env file otherwise.
func LoadEnv(ctx context.Context) error {
	if os.Getenv("GO_ENV") != EnvProduction {
		err := godotenv.Load()
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("no .env file found, using process environment")
			return nil
		}
		return err
	}

	region := getEnv("AWS_REGION", defaultSSMRegion)
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	path := getEnv("SSM_PARAMETER_PATH", defaultParameterPath)
	return ExportParameters(ctx, ssm.NewFromConfig(cfg), path)
}

// ExportParameters sets every parameter under path as an environment
// variable named after the part of its name following the path.
func ExportParameters(ctx context.Context, client ParametersAPI, path string) error {
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	input := &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	}

	count := 0
	for {
		out, err := client.GetParametersByPath(ctx, input)
		if err != nil {
			return fmt.Errorf("unable to load prod environment: %w", err)
		}

		for _, param := range out.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), path)
			if err = os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return fmt.Errorf("unable to set environment variable %s: %w", key, err)
			}
			count++
		}

		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}

	log.Debugf("loaded %d prod environment variables", count)
	return nil
}
