package services

import (
	"strings"
	"testing"

	"kakeibo/internal/models"
	"kakeibo/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("category_target", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)
		m := testutil.MustMonth(t, "2099-03-01")
		note := "groceries plan"

		info, err := ts.budgets.CreateBudget(m, categoryRef(cat.ID), 50000, &note)
		testutil.AssertNoError(t, err)

		if info.ID == "" {
			t.Fatal("expected non-empty budget ID")
		}
		if !info.Month.Equal(m) {
			t.Errorf("expected month %s, got %s", m, info.Month)
		}
		if info.Name != cat.Name {
			t.Errorf("expected name %q, got %q", cat.Name, info.Name)
		}
		if info.Note == nil || *info.Note != note {
			t.Errorf("expected note %q, got %v", note, info.Note)
		}
	})

	t.Run("savings_goal_target", func(t *testing.T) {
		ts := setupServices(t)
		goal := testutil.CreateTestSavingsGoal(t, ts.db)
		m := testutil.MustMonth(t, "2099-03-01")

		info, err := ts.budgets.CreateBudget(m, goalRef(goal.ID), 100000, nil)
		testutil.AssertNoError(t, err)

		if info.Target.Kind != models.TargetKindSavingsGoal {
			t.Errorf("expected savings goal target, got %s", info.Target.Kind)
		}
		if info.Note != nil {
			t.Errorf("expected nil note, got %q", *info.Note)
		}
	})

	t.Run("duplicate_target_same_month", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)
		m := testutil.MustMonth(t, "2099-03-01")

		_, err := ts.budgets.CreateBudget(m, categoryRef(cat.ID), 50000, nil)
		testutil.AssertNoError(t, err)

		// Amount and note differing does not matter; the (month, target)
		// pair is what must be unique.
		note := "different"
		_, err = ts.budgets.CreateBudget(m, categoryRef(cat.ID), 99999, &note)
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET")
	})

	t.Run("same_target_other_month_ok", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)

		_, err := ts.budgets.CreateBudget(testutil.MustMonth(t, "2099-03-01"), categoryRef(cat.ID), 50000, nil)
		testutil.AssertNoError(t, err)
		_, err = ts.budgets.CreateBudget(testutil.MustMonth(t, "2099-04-01"), categoryRef(cat.ID), 50000, nil)
		testutil.AssertNoError(t, err)
	})

	t.Run("category_and_goal_same_month_ok", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)
		goal := testutil.CreateTestSavingsGoal(t, ts.db)
		m := testutil.MustMonth(t, "2099-03-01")

		_, err := ts.budgets.CreateBudget(m, categoryRef(cat.ID), 50000, nil)
		testutil.AssertNoError(t, err)
		_, err = ts.budgets.CreateBudget(m, goalRef(goal.ID), 80000, nil)
		testutil.AssertNoError(t, err)
	})

	t.Run("invalid_amounts", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)
		m := testutil.MustMonth(t, "2099-03-01")

		for _, amount := range []int64{0, -1, -50000} {
			_, err := ts.budgets.CreateBudget(m, categoryRef(cat.ID), amount, nil)
			testutil.AssertAppError(t, err, "INVALID_AMOUNT")
		}
	})

	t.Run("note_too_long", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)
		m := testutil.MustMonth(t, "2099-03-01")

		long := strings.Repeat("x", 501)
		_, err := ts.budgets.CreateBudget(m, categoryRef(cat.ID), 50000, &long)
		testutil.AssertAppError(t, err, "INVALID_NOTE")
	})

	t.Run("income_category_rejected", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindIncome)
		m := testutil.MustMonth(t, "2099-03-01")

		_, err := ts.budgets.CreateBudget(m, categoryRef(cat.ID), 50000, nil)
		testutil.AssertAppError(t, err, "TARGET_NOT_BUDGETABLE")
	})

	t.Run("missing_target", func(t *testing.T) {
		ts := setupServices(t)
		m := testutil.MustMonth(t, "2099-03-01")

		_, err := ts.budgets.CreateBudget(m, categoryRef("00000000-0000-0000-0000-000000000000"), 50000, nil)
		testutil.AssertAppError(t, err, "TARGET_NOT_FOUND")
	})
}

func TestGetBudget(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)
		m := testutil.MustMonth(t, "2099-03-01")
		created, err := ts.budgets.CreateBudget(m, categoryRef(cat.ID), 50000, nil)
		testutil.AssertNoError(t, err)

		info, err := ts.budgets.GetBudget(created.ID)
		testutil.AssertNoError(t, err)
		if info == nil {
			t.Fatal("expected budget, got nil")
		}
		if info.Name != cat.Name {
			t.Errorf("expected name %q, got %q", cat.Name, info.Name)
		}
	})

	t.Run("absent_returns_nil_without_error", func(t *testing.T) {
		ts := setupServices(t)

		info, err := ts.budgets.GetBudget("00000000-0000-0000-0000-000000000000")
		testutil.AssertNoError(t, err)
		if info != nil {
			t.Errorf("expected nil for absent budget, got %+v", info)
		}
	})

	t.Run("deleted_target_degrades_to_unknown", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)
		m := testutil.MustMonth(t, "2099-03-01")
		created, err := ts.budgets.CreateBudget(m, categoryRef(cat.ID), 50000, nil)
		testutil.AssertNoError(t, err)

		if err := ts.db.Delete(cat).Error; err != nil {
			t.Fatalf("failed to delete category: %v", err)
		}

		info, err := ts.budgets.GetBudget(created.ID)
		testutil.AssertNoError(t, err)
		if info.Name != "Unknown Category" {
			t.Errorf("expected Unknown Category, got %q", info.Name)
		}
	})
}

func TestListBudgets(t *testing.T) {
	t.Run("month_filter_and_name_order", func(t *testing.T) {
		ts := setupServices(t)
		m := testutil.MustMonth(t, "2099-03-01")
		other := testutil.MustMonth(t, "2099-04-01")

		zebra := &models.Category{Name: "Zebra Fund", Kind: models.CategoryKindExpense}
		apple := &models.Category{Name: "Apples", Kind: models.CategoryKindExpense}
		for _, c := range []*models.Category{zebra, apple} {
			if err := ts.db.Create(c).Error; err != nil {
				t.Fatalf("failed to create category: %v", err)
			}
		}

		_, err := ts.budgets.CreateBudget(m, categoryRef(zebra.ID), 10000, nil)
		testutil.AssertNoError(t, err)
		_, err = ts.budgets.CreateBudget(m, categoryRef(apple.ID), 20000, nil)
		testutil.AssertNoError(t, err)
		_, err = ts.budgets.CreateBudget(other, categoryRef(apple.ID), 30000, nil)
		testutil.AssertNoError(t, err)

		infos, err := ts.budgets.ListBudgets(&m)
		testutil.AssertNoError(t, err)
		if len(infos) != 2 {
			t.Fatalf("expected 2 budgets, got %d", len(infos))
		}
		if infos[0].Name != "Apples" || infos[1].Name != "Zebra Fund" {
			t.Errorf("expected name-ascending order, got %q, %q", infos[0].Name, infos[1].Name)
		}
	})

	t.Run("unfiltered_secondary_month_desc", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)

		_, err := ts.budgets.CreateBudget(testutil.MustMonth(t, "2099-03-01"), categoryRef(cat.ID), 10000, nil)
		testutil.AssertNoError(t, err)
		_, err = ts.budgets.CreateBudget(testutil.MustMonth(t, "2099-05-01"), categoryRef(cat.ID), 10000, nil)
		testutil.AssertNoError(t, err)

		infos, err := ts.budgets.ListBudgets(nil)
		testutil.AssertNoError(t, err)
		if len(infos) != 2 {
			t.Fatalf("expected 2 budgets, got %d", len(infos))
		}
		if infos[0].Month.String() != "2099-05-01" {
			t.Errorf("expected newest month first, got %s", infos[0].Month)
		}
	})

	t.Run("empty_month", func(t *testing.T) {
		ts := setupServices(t)
		m := testutil.MustMonth(t, "2099-03-01")

		infos, err := ts.budgets.ListBudgets(&m)
		testutil.AssertNoError(t, err)
		if len(infos) != 0 {
			t.Errorf("expected no budgets, got %d", len(infos))
		}
	})
}

func TestUpdateBudget(t *testing.T) {
	t.Run("amount_only_keeps_note", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)
		m := testutil.MustMonth(t, "2099-03-01")
		note := "keep me"
		created, err := ts.budgets.CreateBudget(m, categoryRef(cat.ID), 50000, &note)
		testutil.AssertNoError(t, err)

		updated, err := ts.budgets.UpdateBudget(created.ID, 75000, NoteChange{})
		testutil.AssertNoError(t, err)

		if updated.Amount != 75000 {
			t.Errorf("expected amount 75000, got %d", updated.Amount)
		}
		if updated.Note == nil || *updated.Note != "keep me" {
			t.Errorf("expected note to be unchanged, got %v", updated.Note)
		}
	})

	t.Run("explicit_null_clears_note", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)
		m := testutil.MustMonth(t, "2099-03-01")
		note := "clear me"
		created, err := ts.budgets.CreateBudget(m, categoryRef(cat.ID), 50000, &note)
		testutil.AssertNoError(t, err)

		updated, err := ts.budgets.UpdateBudget(created.ID, 50000, NoteChange{Set: true, Value: nil})
		testutil.AssertNoError(t, err)

		if updated.Note != nil {
			t.Errorf("expected note cleared, got %q", *updated.Note)
		}
	})

	t.Run("replaces_note", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)
		m := testutil.MustMonth(t, "2099-03-01")
		created, err := ts.budgets.CreateBudget(m, categoryRef(cat.ID), 50000, nil)
		testutil.AssertNoError(t, err)

		newNote := "fresh"
		updated, err := ts.budgets.UpdateBudget(created.ID, 50000, NoteChange{Set: true, Value: &newNote})
		testutil.AssertNoError(t, err)

		if updated.Note == nil || *updated.Note != "fresh" {
			t.Errorf("expected note %q, got %v", newNote, updated.Note)
		}
	})

	t.Run("invalid_amount", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)
		m := testutil.MustMonth(t, "2099-03-01")
		created, err := ts.budgets.CreateBudget(m, categoryRef(cat.ID), 50000, nil)
		testutil.AssertNoError(t, err)

		_, err = ts.budgets.UpdateBudget(created.ID, 0, NoteChange{})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("not_found", func(t *testing.T) {
		ts := setupServices(t)

		_, err := ts.budgets.UpdateBudget("00000000-0000-0000-0000-000000000000", 1000, NoteChange{})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("hard_deletes", func(t *testing.T) {
		ts := setupServices(t)
		cat := testutil.CreateTestCategory(t, ts.db, models.CategoryKindExpense)
		m := testutil.MustMonth(t, "2099-03-01")
		created, err := ts.budgets.CreateBudget(m, categoryRef(cat.ID), 50000, nil)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, ts.budgets.DeleteBudget(created.ID))

		var count int64
		if err := ts.db.Model(&models.Budget{}).Where("id = ?", created.ID).Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 0 {
			t.Errorf("expected row removed, found %d", count)
		}

		// Target is free for a new budget in the same month.
		_, err = ts.budgets.CreateBudget(m, categoryRef(cat.ID), 60000, nil)
		testutil.AssertNoError(t, err)
	})

	t.Run("not_found", func(t *testing.T) {
		ts := setupServices(t)

		err := ts.budgets.DeleteBudget("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}
