package bootstrap

import (
	"carbook.dev/carbook/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Follow{},
		&entity.VehicleType{},
		&entity.VehicleModel{},
		&entity.Hashtag{},
		&entity.Post{},
		&entity.Image{},
		&entity.Like{},
		&entity.Notification{},
	)
}

// SeedTaxonomy inserts the fixed vehicle taxonomy on first start.
func SeedTaxonomy(db *gorm.DB) error {
	taxonomy := map[string][]string{
		"sedan":    {"avante", "sonata", "grandeur"},
		"suv":      {"venue", "kona", "tucson", "santafe", "palisade"},
		"van":      {"staria", "casper"},
		"truck":    {"porter", "mighty"},
		"electric": {"ioniq5", "ioniq6", "nexo"},
	}

	for typeName, modelNames := range taxonomy {
		var vType entity.VehicleType
		err := db.Where("name = ?", typeName).First(&vType).Error
		if err == gorm.ErrRecordNotFound {
			vType = entity.VehicleType{Name: typeName}
			if err := db.Create(&vType).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		for _, modelName := range modelNames {
			var count int64
			if err := db.Model(&entity.VehicleModel{}).
				Where("name = ?", modelName).
				Count(&count).Error; err != nil {
				return err
			}

			if count == 0 {
				model := entity.VehicleModel{TypeID: vType.ID, Name: modelName}
				if err := db.Create(&model).Error; err != nil {
					return err
				}
			}
		}
	}

	return nil
}
