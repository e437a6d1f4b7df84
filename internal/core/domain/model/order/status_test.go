package order_test

import (
	"fmt"
	"testing"

	"shop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.New))
		assert.Equal(t, 2, int(order.Paid))
		assert.Equal(t, 3, int(order.InProgress))
		assert.Equal(t, 4, int(order.Cancel))
		assert.Equal(t, 5, int(order.Delivered))
		assert.Equal(t, 6, int(order.Returned))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.New,
			order.Paid,
			order.InProgress,
			order.Cancel,
			order.Delivered,
			order.Returned,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		invalidStatuses := []order.Status{
			order.Unknown,
			order.Status(-1),
			order.Status(7),
			order.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.Contains(t, err.Error(), "status is invalid")
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return display names", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.New, "New"},
			{order.Paid, "Paid"},
			{order.InProgress, "InProgress"},
			{order.Cancel, "Cancel"},
			{order.Delivered, "Delivered"},
			{order.Returned, "Returned"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())
		}
	})

	t.Run("should return Unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Unknown.String())
		assert.Equal(t, "Unknown", order.Status(-1).String())
		assert.Equal(t, "Unknown", order.Status(42).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse display names ignoring case", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected order.Status
		}{
			{"New", order.New},
			{"paid", order.Paid},
			{"INPROGRESS", order.InProgress},
			{"Cancel", order.Cancel},
			{"delivered", order.Delivered},
			{"Returned", order.Returned},
		}

		for _, tc := range testCases {
			status, err := order.StatusFromString(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, status)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("Unknown")
		assert.Error(t, err)

		_, err = order.StatusFromString("shipped")
		assert.Error(t, err)

		_, err = order.StatusFromString("")
		assert.Error(t, err)
	})
}

// transitionTable is the definitive legality matrix. Every pair of the
// closed status set appears exactly once.
func transitionTable() []struct {
	from     order.Status
	to       order.Status
	expected bool
} {
	return []struct {
		from     order.Status
		to       order.Status
		expected bool
	}{
		{order.New, order.New, false},
		{order.New, order.Paid, true},
		{order.New, order.InProgress, true},
		{order.New, order.Cancel, true},
		{order.New, order.Delivered, true},
		{order.New, order.Returned, false},

		{order.Paid, order.New, false},
		{order.Paid, order.Paid, false},
		{order.Paid, order.InProgress, true},
		{order.Paid, order.Cancel, true},
		{order.Paid, order.Delivered, true},
		{order.Paid, order.Returned, false},

		{order.InProgress, order.New, false},
		{order.InProgress, order.Paid, false},
		{order.InProgress, order.InProgress, false},
		{order.InProgress, order.Cancel, true},
		{order.InProgress, order.Delivered, true},
		{order.InProgress, order.Returned, false},

		{order.Cancel, order.New, false},
		{order.Cancel, order.Paid, false},
		{order.Cancel, order.InProgress, true},
		{order.Cancel, order.Cancel, false},
		{order.Cancel, order.Delivered, false},
		{order.Cancel, order.Returned, false},

		{order.Delivered, order.New, false},
		{order.Delivered, order.Paid, false},
		{order.Delivered, order.InProgress, false},
		{order.Delivered, order.Cancel, false},
		{order.Delivered, order.Delivered, false},
		{order.Delivered, order.Returned, true},

		{order.Returned, order.New, false},
		{order.Returned, order.Paid, false},
		{order.Returned, order.InProgress, false},
		{order.Returned, order.Cancel, false},
		{order.Returned, order.Delivered, true},
		{order.Returned, order.Returned, false},
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("should match the legality matrix exactly", func(t *testing.T) {
		for _, tc := range transitionTable() {
			t.Run(fmt.Sprintf("%s to %s", tc.from, tc.to), func(t *testing.T) {
				assert.Equal(t, tc.expected, tc.from.CanTransitionTo(tc.to))
			})
		}
	})

	t.Run("should disallow every self-transition", func(t *testing.T) {
		for _, s := range []order.Status{order.New, order.Paid, order.InProgress, order.Cancel, order.Delivered, order.Returned} {
			assert.False(t, s.CanTransitionTo(s), "%s must not transition to itself", s)
		}
	})

	t.Run("should disallow transitions involving invalid statuses", func(t *testing.T) {
		assert.False(t, order.Unknown.CanTransitionTo(order.Paid))
		assert.False(t, order.New.CanTransitionTo(order.Unknown))
		assert.False(t, order.New.CanTransitionTo(order.Status(99)))
	})
}

func TestStatus_AllowedTransitions(t *testing.T) {
	t.Run("should list reachable statuses", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]order.Status{order.Paid, order.InProgress, order.Cancel, order.Delivered},
			order.New.AllowedTransitions())
		assert.ElementsMatch(t, []order.Status{order.InProgress}, order.Cancel.AllowedTransitions())
		assert.ElementsMatch(t, []order.Status{order.Returned}, order.Delivered.AllowedTransitions())
		assert.ElementsMatch(t, []order.Status{order.Delivered}, order.Returned.AllowedTransitions())
	})

	t.Run("should return empty slice for invalid status", func(t *testing.T) {
		assert.Empty(t, order.Unknown.AllowedTransitions())
	})

	t.Run("should agree with CanTransitionTo", func(t *testing.T) {
		for _, tc := range transitionTable() {
			if tc.expected {
				assert.Contains(t, tc.from.AllowedTransitions(), tc.to)
			} else {
				assert.NotContains(t, tc.from.AllowedTransitions(), tc.to)
			}
		}
	})
}
