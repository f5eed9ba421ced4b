package monitor

import "strings"

// Classifier decides system-vs-user ownership from configured name tables.
// Both decisions below are pure functions of already-collected data.
type Classifier struct {
	systemNames map[string]bool
	markers     []string
}

// NewClassifier builds a classifier from the configured set of
// OS-infrastructure process names and privileged-account username markers.
func NewClassifier(systemNames, privilegedMarkers []string) *Classifier {
	names := make(map[string]bool, len(systemNames))
	for _, n := range systemNames {
		names[strings.ToLower(n)] = true
	}
	markers := make([]string, 0, len(privilegedMarkers))
	for _, m := range privilegedMarkers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			markers = append(markers, m)
		}
	}
	return &Classifier{systemNames: names, markers: markers}
}

// IsSystem reports whether a process belongs in the system section: its
// lower-cased name is a known OS-infrastructure process, or its username
// carries a privileged-account marker.
func (c *Classifier) IsSystem(name, username string) bool {
	if c.systemNames[strings.ToLower(name)] {
		return true
	}
	u := strings.ToLower(username)
	for _, m := range c.markers {
		if strings.Contains(u, m) {
			return true
		}
	}
	return false
}

type appRule struct {
	tag   AppType
	match func(name, cmd string) bool
}

func nameAny(subs ...string) func(string, string) bool {
	return func(name, _ string) bool { return containsAny(name, subs) }
}

// family matches when the process name looks like the runtime and the
// command line carries one of the framework keywords.
func family(names []string, cmds ...string) func(string, string) bool {
	return func(name, cmd string) bool {
		return containsAny(name, names) && containsAny(cmd, cmds)
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func dotnet(name, cmd string) bool {
	return strings.Contains(name, "dotnet") ||
		(strings.HasSuffix(name, ".exe") && strings.Contains(cmd, "aspnet"))
}

var (
	nodeNames   = []string{"node", "npm"}
	pythonNames = []string{"python"}
	phpNames    = []string{"php", "httpd", "apache"}
)

// appRules is evaluated top to bottom; the first hit wins. The order is part
// of the contract: command lines routinely contain several framework
// keywords, and the earlier rule takes priority over a later, possibly more
// specific one.
var appRules = []appRule{
	{AppNextJS, family(nodeNames, "next", "next-server")},
	{AppReact, family(nodeNames, "react", "vite")},
	{AppVue, family(nodeNames, "vue")},
	{AppAngular, family(nodeNames, "angular")},
	{AppExpress, family(nodeNames, "express")},
	{AppStatic, family(nodeNames, "serve")},
	{AppNode, nameAny(nodeNames...)},
	{AppFlask, family(pythonNames, "flask")},
	{AppDjango, family(pythonNames, "django", "manage.py")},
	{AppFastAPI, family(pythonNames, "fastapi", "uvicorn")},
	{AppPython, nameAny(pythonNames...)},
	{AppLaravel, family(phpNames, "laravel", "artisan")},
	{AppPHP, nameAny(phpNames...)},
	{AppSpring, family([]string{"java"}, "spring")},
	{AppJava, nameAny("java")},
	{AppDotnet, dotnet},
	{AppMySQL, nameAny("mysql")},
	{AppPostgres, nameAny("postgres")},
	{AppMongoDB, nameAny("mongo")},
	{AppRedis, nameAny("redis")},
	{AppNginx, nameAny("nginx")},
	{AppApache, nameAny("apache", "httpd")},
	{AppBrowser, nameAny("chrome", "msedge", "firefox")},
}

// DetectAppType assigns an application-framework tag from the process name
// and command line. Deterministic: identical inputs always yield the same
// tag.
func DetectAppType(name, cmdline string) AppType {
	n := strings.ToLower(name)
	c := strings.ToLower(cmdline)
	for _, r := range appRules {
		if r.match(n, c) {
			return r.tag
		}
	}
	return AppOther
}
