package main

import (
	"github.com/OrangeSorbet/annavistara/config"
	"github.com/OrangeSorbet/annavistara/routes"
	"github.com/OrangeSorbet/annavistara/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	r := routes.SetupRouter(config.DB)
	r.Run(":8080")
}
