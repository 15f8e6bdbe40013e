package grammar

import (
	"testing"

	"github.com/Patryk27/janet/internal/gitlab"
	"github.com/stretchr/testify/require"
)

func projectIDPtr(id gitlab.ProjectID) *gitlab.ProjectID { return &id }

func TestParseProjectPtr(t *testing.T) {
	cases := []struct {
		input    string
		expected ProjectPtr
	}{
		{"123", ProjectPtr{ID: projectIDPtr(123)}},
		{"hello-world", ProjectPtr{Name: "hello-world"}},
		{"hello-world__123", ProjectPtr{Name: "hello-world__123"}},
		{
			"somewhere/hello-world",
			ProjectPtr{
				Namespace: &NamespacePtr{Name: "somewhere"},
				Name:      "hello-world",
			},
		},
		{
			"some/nested/group/hello-world",
			ProjectPtr{
				Namespace: &NamespacePtr{Name: "some/nested/group"},
				Name:      "hello-world",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			ptr, rest, ok := parseProjectPtr(c.input)
			require.True(t, ok)
			require.Empty(t, rest)
			require.Equal(t, c.expected, ptr)
			require.Equal(t, c.input, ptr.String())
		})
	}
}

func TestParseMergeRequestPtr(t *testing.T) {
	cases := []struct {
		input    string
		expected MergeRequestPtr
	}{
		{"!456", MergeRequestPtr{IID: 456}},
		{
			"123!456",
			MergeRequestPtr{
				Project: &ProjectPtr{ID: projectIDPtr(123)},
				IID:     456,
			},
		},
		{
			"hello-world!456",
			MergeRequestPtr{
				Project: &ProjectPtr{Name: "hello-world"},
				IID:     456,
			},
		},
		{
			"somewhere/hello-world!456",
			MergeRequestPtr{
				Project: &ProjectPtr{
					Namespace: &NamespacePtr{Name: "somewhere"},
					Name:      "hello-world",
				},
				IID: 456,
			},
		},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			ptr, rest, ok := parseMergeRequestPtr(c.input)
			require.True(t, ok)
			require.Empty(t, rest)
			require.Equal(t, c.expected, ptr)
			require.Equal(t, c.input, ptr.String())
		})
	}
}

func TestParseMergeRequestPtr_URL(t *testing.T) {
	input := "https://gitlab.com/some/project/-/merge_requests/123"

	ptr, rest, ok := parseMergeRequestPtr(input)
	require.True(t, ok)
	require.Empty(t, rest)
	require.NotNil(t, ptr.URL)
	require.Equal(t, input, ptr.String())
}

func TestParseMergeRequestPtr_Invalid(t *testing.T) {
	for _, input := range []string{"", "!", "not a pointer", "123"} {
		t.Run(input, func(t *testing.T) {
			_, _, ok := parseMergeRequestPtr(input)
			require.False(t, ok)
		})
	}
}
