package monitor_test

import (
	"testing"

	"github.com/Kshitijkb28/port-manager/internal/monitor"
)

func TestDetectAppType(t *testing.T) {
	tests := []struct {
		name    string
		proc    string
		cmdline string
		want    monitor.AppType
	}{
		{
			name:    "next-server marks nextjs",
			proc:    "node.exe",
			cmdline: `node /app/node_modules/.bin/next-server`,
			want:    monitor.AppNextJS,
		},
		{
			name:    "vite dev server marks react",
			proc:    "node",
			cmdline: "node node_modules/.bin/vite --port 5173",
			want:    monitor.AppReact,
		},
		{
			name:    "bare node",
			proc:    "node.exe",
			cmdline: "node index.js",
			want:    monitor.AppNode,
		},
		{
			// "server.js" contains "serve": the static rule fires. Known
			// keyword-matching quirk, kept for compatibility.
			name:    "server.js trips the static rule",
			proc:    "node",
			cmdline: "node server.js",
			want:    monitor.AppStatic,
		},
		{
			name:    "flask app",
			proc:    "python3",
			cmdline: "python3 -m flask run",
			want:    monitor.AppFlask,
		},
		{
			name:    "manage.py marks django",
			proc:    "python.exe",
			cmdline: "python manage.py runserver",
			want:    monitor.AppDjango,
		},
		{
			name:    "uvicorn marks fastapi",
			proc:    "python",
			cmdline: "python -m uvicorn app:api",
			want:    monitor.AppFastAPI,
		},
		{
			name:    "plain interpreter",
			proc:    "python3",
			cmdline: "python3 worker.py",
			want:    monitor.AppPython,
		},
		{
			name:    "artisan marks laravel",
			proc:    "php.exe",
			cmdline: "php artisan serve",
			want:    monitor.AppLaravel,
		},
		{
			name:    "httpd classifies into the php family before apache",
			proc:    "httpd",
			cmdline: "/usr/sbin/httpd -DFOREGROUND",
			want:    monitor.AppPHP,
		},
		{
			name:    "spring boot",
			proc:    "java",
			cmdline: "java -jar spring-app.jar",
			want:    monitor.AppSpring,
		},
		{
			name:    "aspnet host",
			proc:    "myservice.exe",
			cmdline: "myservice.exe --urls http://+:5000 aspnetcore",
			want:    monitor.AppDotnet,
		},
		{
			name:    "mysqld",
			proc:    "mysqld.exe",
			cmdline: "",
			want:    monitor.AppMySQL,
		},
		{
			name:    "postgres",
			proc:    "postgres",
			cmdline: "postgres -D /var/lib/postgresql/data",
			want:    monitor.AppPostgres,
		},
		{
			name:    "redis server",
			proc:    "redis-server",
			cmdline: "redis-server *:6379",
			want:    monitor.AppRedis,
		},
		{
			name:    "nginx",
			proc:    "nginx",
			cmdline: "nginx: master process",
			want:    monitor.AppNginx,
		},
		{
			name:    "browser",
			proc:    "msedge.exe",
			cmdline: "",
			want:    monitor.AppBrowser,
		},
		{
			name:    "unknown binary",
			proc:    "mystery.exe",
			cmdline: "mystery --listen 9000",
			want:    monitor.AppOther,
		},
		{
			// The ordering contract: react precedes express and serve, so a
			// command line carrying all three keywords resolves to react.
			name:    "multiple framework keywords pick the earlier rule",
			proc:    "node",
			cmdline: "node ./bin/serve --framework express --bundler vite",
			want:    monitor.AppReact,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := monitor.DetectAppType(tt.proc, tt.cmdline)
			if got != tt.want {
				t.Errorf("DetectAppType(%q, %q) = %s, want %s", tt.proc, tt.cmdline, got, tt.want)
			}
		})
	}
}

func TestDetectAppTypeDeterministic(t *testing.T) {
	first := monitor.DetectAppType("node.exe", "node next-server --port 3000")
	for i := 0; i < 100; i++ {
		if got := monitor.DetectAppType("node.exe", "node next-server --port 3000"); got != first {
			t.Fatalf("iteration %d: got %s, want %s", i, got, first)
		}
	}
}

func TestIsSystem(t *testing.T) {
	c := monitor.NewClassifier(
		[]string{"svchost.exe", "services.exe", "systemd"},
		[]string{"system", "local service", "network service"},
	)

	tests := []struct {
		name     string
		proc     string
		username string
		want     bool
	}{
		{"known system name", "svchost.exe", `DESKTOP\alice`, true},
		{"system name is case-insensitive", "SVCHOST.EXE", "", true},
		{"privileged username marker", "myagent.exe", `NT AUTHORITY\SYSTEM`, true},
		{"local service account", "spooler.exe", `NT AUTHORITY\LOCAL SERVICE`, true},
		{"ordinary user process", "node.exe", `DESKTOP\alice`, false},
		{"unknown username", "node.exe", "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsSystem(tt.proc, tt.username); got != tt.want {
				t.Errorf("IsSystem(%q, %q) = %v, want %v", tt.proc, tt.username, got, tt.want)
			}
		})
	}
}
