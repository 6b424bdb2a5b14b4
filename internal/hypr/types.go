package hypr

// Wire types for hyprctl -j replies. Only the fields hyprnav reads are kept.

type monitorReply struct {
	Name    string `json:"name"`
	Focused bool   `json:"focused"`
}

type workspaceReply struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Monitor string `json:"monitor"`
	Windows int    `json:"windows"`
}
