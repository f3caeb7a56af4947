package processor

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	awsclient "github.com/younsl/logsweep/pkg/aws"
)

type fakeLogs struct {
	awsclient.LogsAPI

	groups     []types.LogGroup
	deleteErrs map[string]error
	deleted    []string
}

func (f *fakeLogs) DescribeLogGroups(_ context.Context, in *cloudwatchlogs.DescribeLogGroupsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	var out []types.LogGroup
	for _, g := range f.groups {
		if strings.HasPrefix(aws.ToString(g.LogGroupName), aws.ToString(in.LogGroupNamePrefix)) {
			out = append(out, g)
		}
	}
	return &cloudwatchlogs.DescribeLogGroupsOutput{LogGroups: out}, nil
}

func (f *fakeLogs) DeleteLogGroup(_ context.Context, in *cloudwatchlogs.DeleteLogGroupInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DeleteLogGroupOutput, error) {
	name := aws.ToString(in.LogGroupName)
	if err, ok := f.deleteErrs[name]; ok {
		return nil, err
	}
	f.deleted = append(f.deleted, name)
	return &cloudwatchlogs.DeleteLogGroupOutput{}, nil
}

func registryFor(client awsclient.LogsAPI) *awsclient.ClientRegistry[awsclient.LogsAPI] {
	return awsclient.NewClientRegistry(func(context.Context, string) (awsclient.LogsAPI, error) {
		return client, nil
	})
}

type fakeScheduler struct {
	inputs []*scheduler.CreateScheduleInput
	err    error
}

func (f *fakeScheduler) CreateSchedule(_ context.Context, in *scheduler.CreateScheduleInput, _ ...func(*scheduler.Options)) (*scheduler.CreateScheduleOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, in)
	return &scheduler.CreateScheduleOutput{
		ScheduleArn: aws.String("arn:aws:scheduler:us-east-1:123456789012:schedule/default/" + aws.ToString(in.Name)),
	}, nil
}

var errThrottled = errors.New("throttled")
