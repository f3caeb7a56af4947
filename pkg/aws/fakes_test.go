package aws

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// fakeLogs serves DescribeLogGroups in pages of pageSize.
type fakeLogs struct {
	groups     []types.LogGroup
	pageSize   int
	tags       map[string]map[string]string
	deleteErr  error
	deleted    []string
	tagLookups int
}

func (f *fakeLogs) DescribeLogGroups(_ context.Context, in *cloudwatchlogs.DescribeLogGroupsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	var matched []types.LogGroup
	for _, g := range f.groups {
		if strings.HasPrefix(aws.ToString(g.LogGroupName), aws.ToString(in.LogGroupNamePrefix)) {
			matched = append(matched, g)
		}
	}

	start := 0
	if in.NextToken != nil {
		for i, g := range matched {
			if aws.ToString(g.LogGroupName) == aws.ToString(in.NextToken) {
				start = i
			}
		}
	}
	size := f.pageSize
	if size == 0 {
		size = len(matched)
	}
	end := min(start+size, len(matched))

	out := &cloudwatchlogs.DescribeLogGroupsOutput{LogGroups: matched[start:end]}
	if end < len(matched) {
		out.NextToken = matched[end].LogGroupName
	}
	return out, nil
}

func (f *fakeLogs) DeleteLogGroup(_ context.Context, in *cloudwatchlogs.DeleteLogGroupInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DeleteLogGroupOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, aws.ToString(in.LogGroupName))
	return &cloudwatchlogs.DeleteLogGroupOutput{}, nil
}

func (f *fakeLogs) ListTagsForResource(_ context.Context, in *cloudwatchlogs.ListTagsForResourceInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.ListTagsForResourceOutput, error) {
	f.tagLookups++
	return &cloudwatchlogs.ListTagsForResourceOutput{Tags: f.tags[aws.ToString(in.ResourceArn)]}, nil
}

func staticRegistry(client LogsAPI) *ClientRegistry[LogsAPI] {
	return NewClientRegistry(func(context.Context, string) (LogsAPI, error) {
		return client, nil
	})
}

func logGroup(name string, retention int32) types.LogGroup {
	lg := types.LogGroup{
		LogGroupName: aws.String(name),
		Arn:          aws.String("arn:aws:logs:us-east-1:123456789012:log-group:" + name + ":*"),
		CreationTime: aws.Int64(1735821296000),
		StoredBytes:  aws.Int64(2048),
	}
	if retention > 0 {
		lg.RetentionInDays = aws.Int32(retention)
	}
	return lg
}
