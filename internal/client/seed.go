package client

import (
	"dental-academy-store/internal/model"
	"log"

	"gorm.io/gorm"
)

// SeedCatalog loads the demo catalog, instructor directory and mock accounts
// on first start. The storefront shipped with a static catalog; re-running is
// a no-op because everything is keyed.
func SeedCatalog(db *gorm.DB) {
	instructors := []*model.Instructor{
		{ID: 1, Name: "دکتر محمدی", BankAccount: "6037-9911-2233-4455"},
		{ID: 2, Name: "دکتر رضایی", BankAccount: "6219-8610-5566-7788"},
		{ID: 3, Name: "دکتر احمدی", BankAccount: "5859-8310-9900-1122"},
	}

	courses := []*model.Course{
		{ID: 1, Title: "اندودانتیکس پیشرفته", Price: "۲,۵۰۰,۰۰۰ تومان", DiscountPrice: "۲,۰۰۰,۰۰۰ تومان", InstructorID: 1},
		{ID: 2, Title: "ایمپلنت مقدماتی", Price: "۳,۸۰۰,۰۰۰ تومان", InstructorID: 2},
		{ID: 3, Title: "ترمیمی و زیبایی", Price: "۱,۹۰۰,۰۰۰ تومان", InstructorID: 1},
		{ID: 4, Title: "ارتودنسی کاربردی", Price: "۴,۲۰۰,۰۰۰ تومان", InstructorID: 3},
		{ID: 5, Title: "رادیولوژی دهان", Price: "۱,۲۰۰,۰۰۰ تومان", InstructorID: 2},
	}

	users := []*model.User{
		{ID: "student@demo.ir", Name: "دانشجوی نمونه", Password: "student123", Role: model.RoleStudent},
		{ID: "admin@demo.ir", Name: "مدیر سایت", Password: "admin123", Role: model.RoleAdmin},
		{ID: "super@demo.ir", Name: "مدیر کل", Password: "super123", Role: model.RoleSuperAdmin},
	}

	for _, instructor := range instructors {
		if err := db.FirstOrCreate(instructor, model.Instructor{ID: instructor.ID}).Error; err != nil {
			log.Fatal("seed instructors:", err)
		}
	}
	for _, course := range courses {
		if err := db.FirstOrCreate(course, model.Course{ID: course.ID}).Error; err != nil {
			log.Fatal("seed courses:", err)
		}
	}
	for _, user := range users {
		if err := db.FirstOrCreate(user, model.User{ID: user.ID}).Error; err != nil {
			log.Fatal("seed users:", err)
		}
	}
}
