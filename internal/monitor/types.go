package monitor

// AppType tags the application framework a process appears to be running.
type AppType string

// Application-type tags, one closed set. Sub-tags (nextjs, flask, ...) are
// only produced when the matching runtime family matched first.
const (
	AppNode     AppType = "node"
	AppNextJS   AppType = "nextjs"
	AppReact    AppType = "react"
	AppVue      AppType = "vue"
	AppAngular  AppType = "angular"
	AppExpress  AppType = "express"
	AppStatic   AppType = "static"
	AppPython   AppType = "python"
	AppFlask    AppType = "flask"
	AppDjango   AppType = "django"
	AppFastAPI  AppType = "fastapi"
	AppPHP      AppType = "php"
	AppLaravel  AppType = "laravel"
	AppJava     AppType = "java"
	AppSpring   AppType = "spring"
	AppDotnet   AppType = "dotnet"
	AppMySQL    AppType = "mysql"
	AppPostgres AppType = "postgres"
	AppMongoDB  AppType = "mongodb"
	AppRedis    AppType = "redis"
	AppNginx    AppType = "nginx"
	AppApache   AppType = "apache"
	AppBrowser  AppType = "browser"
	AppOther    AppType = "other"
)

// Entry is one attributed socket: a (port, pid) pair enriched with process
// identity, classification and controller ancestry. Unique per (port, pid)
// within a snapshot.
type Entry struct {
	Port          uint16  `json:"port"`
	PID           int32   `json:"pid"`
	Name          string  `json:"name"`
	Username      string  `json:"username"`
	Address       string  `json:"address"`
	Protocol      string  `json:"type"`
	ConnState     string  `json:"conn_status"`
	AppType       AppType `json:"app_type"`
	System        bool    `json:"is_system"`
	ParentPID     int32   `json:"parent_pid"`
	RootPID       int32   `json:"root_controller_pid,omitempty"`
	RootName      string  `json:"root_controller_name,omitempty"`
	HasController bool    `json:"has_parent_controller"`
}

// Snapshot is one complete, self-consistent read of the port-to-process
// state, partitioned into system and user sections, each sorted by port.
// Snapshots are rebuilt from scratch every cycle.
type Snapshot struct {
	System []Entry `json:"system"`
	User   []Entry `json:"user"`
}

// Len returns the total number of entries across both sections.
func (s *Snapshot) Len() int {
	return len(s.System) + len(s.User)
}
