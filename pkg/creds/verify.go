package creds

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/perfpredict/dataver/pkg/status"
)

func newSession(profile, region string) (*session.Session, error) {
	return session.NewSessionWithOptions(session.Options{
		Profile: profile,
		Config: aws.Config{
			Region: aws.String(region),
		},
		SharedConfigState: session.SharedConfigEnable,
	})
}

// Validate checks the stored credentials against the identity endpoint
// and returns the caller ARN. A failure here is a warning to the
// operator, not a fatal condition: the files are already written.
func Validate(ctx context.Context, profile, region string) (string, error) {
	sess, err := newSession(profile, region)
	if err != nil {
		return "", status.ErrRemoteOperation.Wrap(err)
	}
	out, err := sts.New(sess).GetCallerIdentityWithContext(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", status.ErrRemoteOperation.Wrap(err)
	}
	return aws.StringValue(out.Arn), nil
}

// VerifyBucket checks that an object-storage bucket is reachable with
// the stored credentials.
func VerifyBucket(ctx context.Context, profile, region, bucket string) error {
	sess, err := newSession(profile, region)
	if err != nil {
		return status.ErrRemoteOperation.Wrap(err)
	}
	_, err = s3.New(sess).HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return status.ErrRemoteOperation.Wrap(err)
	}
	return nil
}
