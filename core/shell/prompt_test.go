package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPrompt(t *testing.T) {
	env := PromptEnv{
		User: "alice",
		Host: "box.example.com",
		Home: "/home/alice",
		Wd:   "/home/alice/src/nestsh",
		UID:  1000,
	}

	cases := map[string]struct {
		template string
		env      PromptEnv
		expected string
	}{
		"default": {
			template: `[\w nestsh]\$ `,
			env:      env,
			expected: "[~/src/nestsh nestsh]$ ",
		},
		"user and host": {
			template: `\u@\h:\W\$ `,
			env:      env,
			expected: "alice@box:nestsh$ ",
		},
		"root": {
			template: `\$`,
			env:      PromptEnv{UID: 0},
			expected: "#",
		},
		"home": {
			template: `\w|\W`,
			env:      PromptEnv{Home: "/home/alice", Wd: "/home/alice"},
			expected: "~|~",
		},
		"home prefix is not home": {
			template: `\w`,
			env:      PromptEnv{Home: "/home/al", Wd: "/home/alice"},
			expected: "/home/alice",
		},
		"root directory": {
			template: `\W`,
			env:      PromptEnv{Home: "/home/alice", Wd: "/"},
			expected: "/",
		},
		"escaped backslash": {
			template: `\\w`,
			env:      env,
			expected: `\w`,
		},
		"octal and hex": {
			template: `\033[1m\x41`,
			env:      env,
			expected: "\033[1mA",
		},
		"newline": {
			template: `\w\n> `,
			env:      env,
			expected: "~/src/nestsh\n> ",
		},
		"values are not unescaped": {
			template: `\w`,
			env:      PromptEnv{Wd: `/tmp/\n`},
			expected: `/tmp/\n`,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExpandPrompt(tc.template, tc.env))
		})
	}
}
