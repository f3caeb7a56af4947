package utils

import "strconv"

// RetentionLabel renders a retention setting the way the CloudWatch console does.
func RetentionLabel(days *int32) string {
	if days == nil {
		return "Never expire"
	}
	if *days == 1 {
		return "1 day"
	}
	return strconv.Itoa(int(*days)) + " days"
}
