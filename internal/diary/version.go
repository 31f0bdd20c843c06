package diary

// Storage keys and format constants.
const (
	// StateKey is the versioned key of the persisted state tree.
	StateKey = "workout_diary_v1"

	// CategoryOrderKey is the key of the persisted category order.
	CategoryOrderKey = "category_order_v1"

	// ThemeKey is the key of the persisted theme preference.
	ThemeKey = "theme_pref_v1"

	// ExportFilename is the suggested name for exported files.
	ExportFilename = "workout-diary-export.json"

	// Version is the workoutdiary release version.
	Version = "0.1.0"
)
