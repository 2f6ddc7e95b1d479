package repository

import (
	wizardRepo "github.com/YarKhan02/Workshop-sub000/database/repository/wizard"
)

// Re-export the WizardRepository interface and constructors.
type WizardRepository = wizardRepo.WizardRepository

var (
	ErrWizardNotFound   = wizardRepo.ErrNotFound
	NewRedisWizardRepo  = wizardRepo.NewRedisWizardRepo
	NewMongoWizardRepo  = wizardRepo.NewMongoWizardRepo
	NewMemoryWizardRepo = wizardRepo.NewMemoryWizardRepo
)
