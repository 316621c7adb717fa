package tray

// iconData holds the tray icon bytes. Distribution builds inject an icon at
// compile time; when nil the platform's default placeholder is used.
var iconData []byte
