package sorting

import (
	"errors"
	"fmt"
	"strings"
)

// AliasPlacement controls where alias usings land relative to regular ones.
type AliasPlacement string

const (
	AliasBottom     AliasPlacement = "bottom"
	AliasTop        AliasPlacement = "top"
	AliasIntermixed AliasPlacement = "intermixed"
)

var ErrUnknownAliasPlacement = errors.New("unknown alias placement")

func ParseAliasPlacement(value string) (AliasPlacement, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(AliasBottom):
		return AliasBottom, nil
	case string(AliasTop):
		return AliasTop, nil
	case string(AliasIntermixed):
		return AliasIntermixed, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownAliasPlacement, value)
	}
}

// Comparator orders using directives. Directives rooted in the primary
// namespace sort first, then by root namespace, then by full path. Ties keep
// original relative order because callers sort stably.
type Comparator struct {
	PrimaryNamespace string
}

func (c Comparator) Less(leftRoot, leftPath, rightRoot, rightPath string) bool {
	leftPrimary := c.PrimaryNamespace != "" && leftRoot == c.PrimaryNamespace
	rightPrimary := c.PrimaryNamespace != "" && rightRoot == c.PrimaryNamespace
	if leftPrimary != rightPrimary {
		return leftPrimary
	}
	if leftRoot != rightRoot {
		return leftRoot < rightRoot
	}
	return leftPath < rightPath
}
