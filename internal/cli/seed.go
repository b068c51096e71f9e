package cli

import (
	"fmt"
	"os"

	"github.com/RoyceAzure/lab/ordercenter/internal/dto"
	"github.com/RoyceAzure/lab/ordercenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/ordercenter/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

/*
seed 檔格式:

	products:
	  - name: Widget
	    price: "10.00"
*/
type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load products from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := readSeedFile(args[0])
			if err != nil {
				return err
			}

			return withDatabase(cmd, opts, func(conn *gorm.DB) error {
				dao := db.NewDbDao(conn)
				if err := dao.InitMigrate(); err != nil {
					return err
				}

				productService := service.NewProductService(db.NewProductDBRepo(dao), nil)
				for _, p := range params {
					product, err := productService.CreateProduct(cmd.Context(), p)
					if err != nil {
						return fmt.Errorf("seed product %q: %w", p.Name, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "created product %d %s %s\n", product.ID, product.Name, product.Price)
				}
				return nil
			})
		},
	}
}

func readSeedFile(path string) ([]dto.ProductParam, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	params := make([]dto.ProductParam, 0, len(f.Products))
	for i, p := range f.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("products[%d].price %q: %w", i, p.Price, err)
		}
		params = append(params, dto.ProductParam{Name: p.Name, Price: price})
	}
	return params, nil
}
