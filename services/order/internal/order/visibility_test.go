package order

import (
	"testing"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/session"
)

func TestVisibleTo(t *testing.T) {
	restaurantA := uuid.MustParse("550e8400-e29b-41d4-a716-446655440001")
	restaurantB := uuid.MustParse("550e8400-e29b-41d4-a716-446655440002")
	restaurantC := uuid.MustParse("550e8400-e29b-41d4-a716-446655440003")

	orders := []*Order{
		{ID: apt.GenerateNewID(), RestaurantID: restaurantA},
		{ID: apt.GenerateNewID(), RestaurantID: restaurantB},
		{ID: apt.GenerateNewID(), RestaurantID: restaurantC},
		{ID: apt.GenerateNewID(), RestaurantID: restaurantA},
	}

	tests := []struct {
		name      string
		role      string
		permitted map[uuid.UUID]bool
		wantCount int
	}{
		{
			name:      "developerSeesAll",
			role:      session.RoleDeveloper,
			permitted: nil,
			wantCount: 4,
		},
		{
			name:      "adminScopedToPermittedSet",
			role:      session.RoleAdmin,
			permitted: map[uuid.UUID]bool{restaurantA: true},
			wantCount: 2,
		},
		{
			name:      "adminWithEmptySetSeesNothing",
			role:      session.RoleAdmin,
			permitted: map[uuid.UUID]bool{},
			wantCount: 0,
		},
		{
			name:      "adminWithNilSetSeesNothing",
			role:      session.RoleAdmin,
			permitted: nil,
			wantCount: 0,
		},
		{
			name:      "adminWithTwoRestaurants",
			role:      session.RoleAdmin,
			permitted: map[uuid.UUID]bool{restaurantB: true, restaurantC: true},
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.Session{UserID: apt.GenerateNewID(), Role: tt.role}
			visible := VisibleTo(orders, sess, tt.permitted)

			if len(visible) != tt.wantCount {
				t.Fatalf("VisibleTo() returned %d orders, want %d", len(visible), tt.wantCount)
			}

			if sess.IsPrivileged() {
				return
			}
			for _, o := range visible {
				if !tt.permitted[o.RestaurantID] {
					t.Errorf("VisibleTo() leaked order for restaurant %s outside permitted set", o.RestaurantID)
				}
			}
		})
	}
}

func TestSortByNewest(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	orders := []*Order{
		{ID: apt.GenerateNewID(), CreatedAt: base.Add(-2 * time.Hour)},
		{ID: apt.GenerateNewID(), CreatedAt: base},
		{ID: apt.GenerateNewID(), CreatedAt: base.Add(-1 * time.Hour)},
	}

	SortByNewest(orders)

	for i := 1; i < len(orders); i++ {
		if orders[i].CreatedAt.After(orders[i-1].CreatedAt) {
			t.Errorf("SortByNewest() order at %d is newer than order at %d", i, i-1)
		}
	}
}
