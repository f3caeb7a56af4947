package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/younsl/logsweep/internal/models"
	"github.com/younsl/logsweep/pkg/utils"
)

// ErrLogGroupNotFound is returned when no log group has exactly the requested name.
var ErrLogGroupNotFound = errors.New("log group not found")

// LogsAPI is the subset of the CloudWatch Logs client used by logsweep.
type LogsAPI interface {
	cloudwatchlogs.DescribeLogGroupsAPIClient
	DeleteLogGroup(ctx context.Context, params *cloudwatchlogs.DeleteLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DeleteLogGroupOutput, error)
	ListTagsForResource(ctx context.Context, params *cloudwatchlogs.ListTagsForResourceInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.ListTagsForResourceOutput, error)
}

// NewLogsClient creates a CloudWatch Logs client for region.
func NewLogsClient(ctx context.Context, region string) (LogsAPI, error) {
	cfg, err := LoadConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return cloudwatchlogs.NewFromConfig(cfg), nil
}

// NewLogsRegistry returns a registry of CloudWatch Logs clients keyed by region.
func NewLogsRegistry() *ClientRegistry[LogsAPI] {
	return NewClientRegistry(NewLogsClient)
}

// LogGroupResolver looks up the current configuration of a log group by name.
type LogGroupResolver struct {
	clients *ClientRegistry[LogsAPI]
}

// NewLogGroupResolver creates a resolver using the given regional clients.
func NewLogGroupResolver(clients *ClientRegistry[LogsAPI]) *LogGroupResolver {
	return &LogGroupResolver{clients: clients}
}

// Resolve queries log groups by name prefix and returns the one whose name equals
// name exactly. Other log groups sharing the prefix are ignored.
func (r *LogGroupResolver) Resolve(ctx context.Context, region, name string) (models.LogGroupInfo, error) {
	client, err := r.clients.Get(ctx, region)
	if err != nil {
		return models.LogGroupInfo{}, err
	}

	paginator := cloudwatchlogs.NewDescribeLogGroupsPaginator(client, &cloudwatchlogs.DescribeLogGroupsInput{
		LogGroupNamePrefix: aws.String(name),
	})

	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return models.LogGroupInfo{}, fmt.Errorf("describing log groups with prefix %s in %s: %w", name, region, err)
		}
		for _, lg := range output.LogGroups {
			if aws.ToString(lg.LogGroupName) == name {
				return toLogGroupInfo(lg), nil
			}
		}
	}

	return models.LogGroupInfo{}, fmt.Errorf("%w: %s in %s", ErrLogGroupNotFound, name, region)
}

// LogGroupDeleter deletes log groups in any region.
type LogGroupDeleter struct {
	clients *ClientRegistry[LogsAPI]
}

// NewLogGroupDeleter creates a deleter using the given regional clients.
func NewLogGroupDeleter(clients *ClientRegistry[LogsAPI]) *LogGroupDeleter {
	return &LogGroupDeleter{clients: clients}
}

// Delete removes a log group. It reports deleted=false with a nil error when the
// log group no longer exists.
func (d *LogGroupDeleter) Delete(ctx context.Context, region, name string) (bool, error) {
	client, err := d.clients.Get(ctx, region)
	if err != nil {
		return false, err
	}

	_, err = client.DeleteLogGroup(ctx, &cloudwatchlogs.DeleteLogGroupInput{
		LogGroupName: aws.String(name),
	})
	if err != nil {
		var resourceNotFound *types.ResourceNotFoundException
		if errors.As(err, &resourceNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("DeleteLogGroup failed for %s in %s: %w", name, region, err)
	}
	return true, nil
}

// LogGroupScanner lists existing log groups in one region for the CLI.
type LogGroupScanner struct {
	client LogsAPI
	region string
}

// NewLogGroupScanner creates a scanner for region.
func NewLogGroupScanner(client LogsAPI, region string) *LogGroupScanner {
	return &LogGroupScanner{client: client, region: region}
}

// ScanLogGroups returns log groups whose names start with one of prefixes (all log
// groups when prefixes is empty) and that carry every required tag. Page and tag
// lookup errors are collected and scanning continues.
func (s *LogGroupScanner) ScanLogGroups(ctx context.Context, prefixes []string, requiredTags map[string]string) ([]models.LogGroupInfo, []error) {
	queries := prefixes
	if len(queries) == 0 {
		queries = []string{""}
	}

	var found []models.LogGroupInfo
	var scanErrors []error
	seen := make(map[string]bool)

	for _, prefix := range queries {
		input := &cloudwatchlogs.DescribeLogGroupsInput{}
		if prefix != "" {
			input.LogGroupNamePrefix = aws.String(prefix)
		}
		paginator := cloudwatchlogs.NewDescribeLogGroupsPaginator(s.client, input)

		pageCount := 0
		for paginator.HasMorePages() {
			pageCount++
			output, err := paginator.NextPage(ctx)
			if err != nil {
				scanErrors = append(scanErrors, fmt.Errorf("error fetching log groups page %d in %s: %w", pageCount, s.region, err))
				break
			}

			for _, lg := range output.LogGroups {
				info := toLogGroupInfo(lg)
				if seen[info.LogGroupName] {
					continue
				}
				seen[info.LogGroupName] = true

				if len(requiredTags) > 0 {
					tags, err := s.tags(ctx, info.ARN)
					if err != nil {
						scanErrors = append(scanErrors, fmt.Errorf("failed tag lookup for %s: %w", info.LogGroupName, err))
						continue
					}
					info.Tags = tags
					if !utils.MatchesTags(tags, requiredTags) {
						continue
					}
				}
				found = append(found, info)
			}
		}
	}

	return found, scanErrors
}

func (s *LogGroupScanner) tags(ctx context.Context, arn string) (map[string]string, error) {
	output, err := s.client.ListTagsForResource(ctx, &cloudwatchlogs.ListTagsForResourceInput{
		ResourceArn: aws.String(strings.TrimSuffix(arn, ":*")),
	})
	if err != nil {
		return nil, err
	}
	return output.Tags, nil
}

func toLogGroupInfo(lg types.LogGroup) models.LogGroupInfo {
	info := models.LogGroupInfo{
		LogGroupName:    aws.ToString(lg.LogGroupName),
		RetentionInDays: lg.RetentionInDays,
		ARN:             aws.ToString(lg.Arn),
		StoredBytes:     aws.ToInt64(lg.StoredBytes),
	}
	if lg.CreationTime != nil {
		info.CreationTime = time.UnixMilli(*lg.CreationTime).UTC()
	}
	return info
}
