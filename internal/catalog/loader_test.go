package catalog

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(cat *Catalog) []string {
	var out []string
	for _, c := range cat.Categories {
		out = append(out, c.Label)
		for _, t := range c.Topics {
			out = append(out, "  "+t.Label)
		}
	}
	return out
}

func TestDefault_PreservesDeclarationOrder(t *testing.T) {
	cat, err := Default(context.Background())
	require.NoError(t, err)

	want := []string{
		"0. Programming Fundamentals",
		"  0.1 Programming Basics",
		"1. Python Basics",
		"  1.1 Variables",
		"  1.2 Data Types",
		"  1.3 Operations",
		"2. Control Flow",
		"  2.1 Conditionals",
		"  2.2 Loops",
		"  2.3 Functions",
		"3. Data Structures",
		"  3.1 Lists",
		"  3.2 Dictionaries",
		"  3.3 Sets",
	}
	if diff := cmp.Diff(want, labels(cat)); diff != "" {
		t.Errorf("catalog order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 10, cat.TopicCount())
	assert.Equal(t, "aplab.topics.t01_basics.t01_variables", cat.Categories[1].Topics[0].Locator.String())
}

func TestDefault_CarriesTranslations(t *testing.T) {
	cat, err := Default(context.Background())
	require.NoError(t, err)

	variables := cat.Categories[1].Topics[0]
	assert.Equal(t, "1.1 Переменные", variables.Name("ru"))
	assert.Equal(t, "1.1 Variables", variables.Name("en"))
	assert.Equal(t, "1.1 Variables", variables.Name("de"))
	assert.Contains(t, variables.Source, DefaultFilename+":")
}

func TestParse_Order(t *testing.T) {
	src := `
category "Zeta" {
  topic "z2" {
    locator = "a.z2"
  }
  topic "z1" {
    locator = "a.z1"
  }
}

category "Alpha" {
  topic "a1" {
    locator = "a.a1"
  }
}
`
	cat, err := Parse(context.Background(), []byte(src), "order.hcl")
	require.NoError(t, err)

	want := []string{"Zeta", "  z2", "  z1", "Alpha", "  a1"}
	if diff := cmp.Diff(want, labels(cat)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "empty manifest",
			src:     ``,
			wantErr: "no categories declared",
		},
		{
			name:    "syntax error",
			src:     `category "A" {`,
			wantErr: "failed to parse catalog",
		},
		{
			name: "missing locator",
			src: `
category "A" {
  topic "t" {}
}`,
			wantErr: "failed to decode catalog",
		},
		{
			name: "duplicate category",
			src: `
category "A" {
  topic "t" {
    locator = "a.t"
  }
}
category "A" {
  topic "u" {
    locator = "a.u"
  }
}`,
			wantErr: `duplicate category "A"`,
		},
		{
			name: "duplicate topic",
			src: `
category "A" {
  topic "t" {
    locator = "a.t"
  }
  topic "t" {
    locator = "a.u"
  }
}`,
			wantErr: `duplicate topic "t" in category "A"`,
		},
		{
			name: "duplicate locator",
			src: `
category "A" {
  topic "t" {
    locator = "a.t"
  }
}
category "B" {
  topic "u" {
    locator = "a.t"
  }
}`,
			wantErr: `locator "a.t" already used`,
		},
		{
			name: "invalid locator",
			src: `
category "A" {
  topic "t" {
    locator = "a..t"
  }
}`,
			wantErr: "empty segment",
		},
		{
			name:    "category without topics",
			src:     `category "A" {}`,
			wantErr: `category "A" declares no topics`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(tc.src), "test.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
