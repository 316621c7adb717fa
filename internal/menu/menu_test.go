package menu

import "testing"

func TestBuilderValidation(t *testing.T) {
	tests := []struct {
		name    string
		builder *SubmenuBuilder
		wantErr bool
	}{
		{
			name:    "valid",
			builder: NewSubmenu("help", "Help").Text("a", "A").Separator().Text("b", "B"),
		},
		{
			name:    "missing title",
			builder: NewSubmenu("help", "").Text("a", "A"),
			wantErr: true,
		},
		{
			name:    "missing submenu id",
			builder: NewSubmenu("", "Help").Text("a", "A"),
			wantErr: true,
		},
		{
			name:    "empty item id",
			builder: NewSubmenu("help", "Help").Text("", "A"),
			wantErr: true,
		},
		{
			name:    "empty item label",
			builder: NewSubmenu("help", "Help").Text("a", ""),
			wantErr: true,
		},
		{
			name:    "duplicate item ids",
			builder: NewSubmenu("help", "Help").Text("a", "A").Text("a", "B"),
			wantErr: true,
		},
		{
			name:    "separators never collide",
			builder: NewSubmenu("help", "Help").Separator().Separator(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestBarAppendRejectsDuplicateID(t *testing.T) {
	bar := NewBar()
	first, err := NewSubmenu("help", "Help").Text("a", "A").Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := bar.Append(first); err != nil {
		t.Fatalf("append: %v", err)
	}

	second, err := NewSubmenu("help", "Other Help").Text("b", "B").Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := bar.Append(second); err == nil {
		t.Fatal("expected duplicate submenu error")
	}
}

func TestBarRemoveAbsentSubmenu(t *testing.T) {
	bar := NewBar()
	if bar.Remove("help") {
		t.Fatal("removing an absent submenu must report false")
	}
}

func TestBarPreservesSubmenuOrder(t *testing.T) {
	bar := NewBar()
	for _, id := range []string{"file", "edit", "help"} {
		sub, err := NewSubmenu(id, id).Text(id+"_item", id).Build()
		if err != nil {
			t.Fatalf("build %s: %v", id, err)
		}
		if err := bar.Append(sub); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	subs := bar.Submenus()
	want := []string{"file", "edit", "help"}
	if len(subs) != len(want) {
		t.Fatalf("expected %d submenus, got %d", len(want), len(subs))
	}
	for i, sub := range subs {
		if sub.ID != want[i] {
			t.Fatalf("position %d expected %q got %q", i, want[i], sub.ID)
		}
	}
}

func TestActivateReachesAllListeners(t *testing.T) {
	bar := NewBar()
	var got []string
	bar.OnEvent(func(ev Event) { got = append(got, "first:"+ev.ID) })
	bar.OnEvent(func(ev Event) { got = append(got, "second:"+ev.ID) })

	bar.Activate("x")

	if len(got) != 2 || got[0] != "first:x" || got[1] != "second:x" {
		t.Fatalf("unexpected delivery order: %v", got)
	}
}

func TestSystemLauncherRejectsInvalidURL(t *testing.T) {
	launcher := SystemLauncher{}
	if err := launcher.OpenURL(""); err == nil {
		t.Fatal("expected error for empty url")
	}
	if err := launcher.OpenURL("not a url"); err == nil {
		t.Fatal("expected error for malformed url")
	}
}
