package rules

import "strings"

// IsVirtualHostableS3Bucket implements the aws.isVirtualHostableS3Bucket
// rules-engine builtin: true if bucketName could be used as a DNS label (or,
// with allowSubDomains, a sequence of dot-separated DNS labels) in a
// virtual-hosted-style S3 URL.
func IsVirtualHostableS3Bucket(bucketName string, allowSubDomains bool) bool {
	if len(bucketName) < 3 || len(bucketName) > 63 {
		return false
	}
	if allowSubDomains {
		for _, label := range strings.Split(bucketName, ".") {
			if !IsVirtualHostableS3Bucket(label, false) {
				return false
			}
		}
		return true
	}
	if bucketName != strings.ToLower(bucketName) {
		return false
	}
	if looksLikeIPv4(bucketName) {
		return false
	}
	return isValidBucketLabel(bucketName)
}

// isValidBucketLabel matches ^[a-z0-9][a-z0-9\-]*[a-z0-9]$ without regexp.
func isValidBucketLabel(s string) bool {
	if len(s) == 0 {
		return false
	}
	if !isLowerAlnum(s[0]) || !isLowerAlnum(s[len(s)-1]) {
		return false
	}
	for i := 1; i < len(s)-1; i++ {
		c := s[i]
		if !isLowerAlnum(c) && c != '-' {
			return false
		}
	}
	return true
}

func isLowerAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

func looksLikeIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if len(p) == 0 || len(p) > 3 {
			return false
		}
		for _, c := range p {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}
