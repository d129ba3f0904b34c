package config

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
)

// paramStore reads decrypted values from AWS SSM Parameter Store.
type paramStore struct {
	client ssmiface.SSMAPI
}

func newParamStore(region string) (*paramStore, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, err
	}
	return &paramStore{client: ssm.New(sess)}, nil
}

func (p *paramStore) get(name string) (string, error) {
	out, err := p.client.GetParameter(&ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", err
	}
	return aws.StringValue(out.Parameter.Value), nil
}
