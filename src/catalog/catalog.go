// Package catalog holds the fixed list of project scenes (application
// domains) a new container config can be started from.
package catalog

import "slices"

// Scene is one application domain.
type Scene struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Color       string `json:"color" yaml:"color"`
}

var scenes = []Scene{
	{ID: "system", Name: "Systems programming", Description: "Operating systems, device drivers", Icon: "ep:cpu", Color: "#409EFF"},
	{ID: "web", Name: "Web development", Description: "Web services and Wasm applications", Icon: "ep:monitor", Color: "#F7BA1E"},
	{ID: "cli", Name: "Command-line tools", Description: "System utilities, developer tools, file processing", Icon: "ep:data-line", Color: "#909399"},
	{ID: "network", Name: "Network programming", Description: "High-performance servers, APIs, protocol implementations", Icon: "ep:promotion", Color: "#67C23A"},
	{ID: "blockchain", Name: "Blockchain and cryptocurrency", Description: "Smart contract platforms, cryptocurrencies, DeFi applications", Icon: "ep:coin", Color: "#F39C12"},
	{ID: "game", Name: "Game development", Description: "Game engines, game servers, physics engines", Icon: "ep:tools", Color: "#8E44AD"},
	{ID: "data", Name: "Data processing and analytics", Description: "Big data processing, analysis tools, ETL", Icon: "ep:histogram", Color: "#E67E9A"},
	{ID: "concurrent", Name: "Concurrent and distributed systems", Description: "Distributed computing, message queues, cluster management", Icon: "ep:share", Color: "#17C0EB"},
	{ID: "security", Name: "Security tools", Description: "Cryptography, security auditing, vulnerability scanners", Icon: "ep:lock", Color: "#F56C6C"},
	{ID: "ai", Name: "Machine learning and AI", Description: "ML frameworks, deep learning libraries, data science tools", Icon: "ep:magic-stick", Color: "#FF8C00"},
	{ID: "embedded", Name: "Embedded systems", Description: "IoT devices, embedded operating systems, hardware interfaces", Icon: "ep:cpu", Color: "#B9770E"},
	{ID: "graphics", Name: "Graphics and image processing", Description: "Rendering engines, image processing, computer vision", Icon: "ep:picture", Color: "#2980B9"},
	{ID: "audio-video", Name: "Audio and video processing", Description: "Audio libraries, video codecs, streaming", Icon: "ep:video-camera", Color: "#16A085"},
	{ID: "cross-platform", Name: "Cross-platform applications", Description: "Cross-platform desktop and mobile apps", Icon: "ep:platform", Color: "#00B894"},
}

// Scenes returns every scene in catalog order. The slice is a copy.
func Scenes() []Scene {
	return slices.Clone(scenes)
}

// Lookup finds a scene by ID.
func Lookup(id string) (Scene, bool) {
	i := slices.IndexFunc(scenes, func(s Scene) bool { return s.ID == id })
	if i < 0 {
		return Scene{}, false
	}
	return scenes[i], true
}
