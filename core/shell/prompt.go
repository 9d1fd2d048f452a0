package shell

import (
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	promptEscape    = regexp.MustCompile(`\\[uhwW$\\]`)
	unescapeOctal   = regexp.MustCompile(`\\0[0-7]{1,3}`)
	unescapeHex     = regexp.MustCompile(`\\x[0-9a-fA-F][0-9a-fA-F]?`)
	unescapeReplace = strings.NewReplacer(
		`\n`, "\n", // newline
		`\r`, "\r", // carriage return
		`\t`, "\t", // horizontal tab
		`\a`, "\a", // alert
		`\e`, "\033", // escape
	)
)

func unescape(s string) string {
	s = unescapeReplace.Replace(s)
	s = unescapeOctal.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseUint(arg[2:], 8, 8)
		if err != nil {
			return arg
		}
		return string([]byte{byte(out)})
	})
	s = unescapeHex.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseUint(arg[2:], 16, 8)
		if err != nil {
			return arg
		}
		return string([]byte{byte(out)})
	})
	return s
}

// PromptEnv holds the values substituted into a prompt template.
type PromptEnv struct {
	User string
	Host string
	Home string
	Wd   string
	UID  int
}

// CurrentPromptEnv describes the running process.
func CurrentPromptEnv() PromptEnv {
	env := PromptEnv{UID: os.Getuid()}
	if u, err := user.Current(); err == nil {
		env.User = u.Username
	}
	env.Host, _ = os.Hostname()
	env.Home, _ = os.UserHomeDir()
	env.Wd, _ = os.Getwd()
	return env
}

// tildeWd returns the working directory with the home directory shown as ~.
func (e PromptEnv) tildeWd() string {
	switch {
	case e.Home == "" || e.Home == "/":
		return e.Wd
	case e.Wd == e.Home:
		return "~"
	case strings.HasPrefix(e.Wd, e.Home+"/"):
		return "~" + strings.TrimPrefix(e.Wd, e.Home)
	default:
		return e.Wd
	}
}

func (e PromptEnv) value(escape byte) string {
	switch escape {
	case 'u':
		return e.User
	case 'h':
		host, _, _ := strings.Cut(e.Host, ".")
		return host
	case 'w':
		return e.tildeWd()
	case 'W':
		if wd := e.tildeWd(); wd == "~" || wd == "/" {
			return wd
		}
		return filepath.Base(e.Wd)
	case '$':
		if e.UID == 0 {
			return "#"
		}
		return "$"
	default:
		return string(escape)
	}
}

// ExpandPrompt substitutes the escapes in a prompt template. Substituted
// values are never unescaped themselves.
func ExpandPrompt(template string, env PromptEnv) string {
	var sb strings.Builder
	last := 0
	for _, loc := range promptEscape.FindAllStringIndex(template, -1) {
		sb.WriteString(unescape(template[last:loc[0]]))
		sb.WriteString(env.value(template[loc[0]+1]))
		last = loc[1]
	}
	sb.WriteString(unescape(template[last:]))
	return sb.String()
}
