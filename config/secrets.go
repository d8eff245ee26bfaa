package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterGetter is the slice of the SSM client used to resolve secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ResolveSecrets replaces DBPassword with the SSM parameter named by
// DB_PASSWORD_SSM_PARAMETER. It is a no-op when no parameter is configured.
func ResolveSecrets(ctx context.Context, c *Config) error {
	if c.DBPasswordSSMParameter == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	return resolveSecretsWith(ctx, ssm.NewFromConfig(awsCfg), c)
}

func resolveSecretsWith(ctx context.Context, client ParameterGetter, c *Config) error {
	if c.DBPasswordSSMParameter == "" {
		return nil
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(c.DBPasswordSSMParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("get ssm parameter %s: %w", c.DBPasswordSSMParameter, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return fmt.Errorf("ssm parameter %s has no value", c.DBPasswordSSMParameter)
	}

	c.DBPassword = aws.ToString(out.Parameter.Value)
	log.Info().Str("parameter", c.DBPasswordSSMParameter).Msg("database password resolved from SSM")
	return nil
}
