package platform

import (
	"context"
	"strings"

	"github.com/aretw0/notebook/pkg/core"
)

// Conventional commit types used for versioned notebooks.
const (
	CommitTypeFeat  = "feat"
	CommitTypeFix   = "fix"
	CommitTypeDocs  = "docs"
	CommitTypeChore = "chore"
)

// CommitFooter marks commits recorded by notebook.
const CommitFooter = "Recorded-by: notebook"

// FormatCommitMessage builds a Conventional Commit message:
//
//	<type>(<scope>): <subject>
//
//	<body>
//
//	Recorded-by: notebook
func FormatCommitMessage(ctype, scope, subject, body string) string {
	var sb strings.Builder

	if ctype == "" {
		ctype = CommitTypeChore
	}
	sb.WriteString(ctype)
	if scope != "" {
		sb.WriteString("(" + scope + ")")
	}
	sb.WriteString(": ")
	sb.WriteString(subject)

	if body = strings.TrimSpace(body); body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(body)
	}

	sb.WriteString("\n\n")
	sb.WriteString(CommitFooter)
	return sb.String()
}

// AppendFooter adds the notebook footer to a free-form message unless present.
func AppendFooter(msg string) string {
	if strings.Contains(msg, CommitFooter) {
		return msg
	}
	msg = strings.TrimRight(msg, "\n")
	return msg + "\n\n" + CommitFooter
}

// WithChangeReason attaches a commit message to ctx for versioned stores.
func WithChangeReason(ctx context.Context, msg string) context.Context {
	if msg == "" {
		return ctx
	}
	return context.WithValue(ctx, core.ChangeReasonKey, msg)
}
