package objectstore

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Policy is an S3 bucket policy document.
type Policy struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Statement is a single policy statement. Principal and Action are kept in
// their simplest string form, which is all this service ever writes.
type Statement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal string `json:"Principal"`
	Action    string `json:"Action"`
	Resource  string `json:"Resource"`
}

// PublicReadPolicy returns a bucket policy that allows anonymous GET on every
// object in bucket and nothing else.
func PublicReadPolicy(bucket string) string {
	policy := Policy{
		Version: "2012-10-17",
		Statement: []Statement{
			{
				Sid:       "PublicReadGetObject",
				Effect:    "Allow",
				Principal: "*",
				Action:    "s3:GetObject",
				Resource:  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}

// ParsePolicy decodes a policy document.
func ParsePolicy(doc string) (Policy, error) {
	var p Policy
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return Policy{}, fmt.Errorf("parse bucket policy: %w", err)
	}
	return p, nil
}

// AllowsAnonymous reports whether the policy lets the public principal perform
// action (e.g. "s3:GetObject") on key in bucket.
func (p Policy) AllowsAnonymous(action, bucket, key string) bool {
	arn := fmt.Sprintf("arn:aws:s3:::%s/%s", bucket, key)
	allowed := false
	for _, st := range p.Statement {
		if st.Principal != "*" || !actionMatches(st.Action, action) || !resourceMatches(st.Resource, arn) {
			continue
		}
		switch st.Effect {
		case "Deny":
			return false
		case "Allow":
			allowed = true
		}
	}
	return allowed
}

func actionMatches(pattern, action string) bool {
	return pattern == "*" || pattern == "s3:*" || pattern == action
}

func resourceMatches(pattern, arn string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(arn, prefix)
	}
	return pattern == arn
}
