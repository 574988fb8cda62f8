package stepgen

import (
	"fmt"

	"github.com/forgelabs-io/synthetics-forge/classify"
)

// Fragment is one self-contained verification block for a journey. The body
// is opaque templated TypeScript; fragments are concatenated into the journey
// template and are not individually addressable afterwards.
type Fragment struct {
	Name string
	Body string
}

// Analysis carries optional element counts from a prior page analysis. All
// counts are best-effort hints; zero means "not observed".
type Analysis struct {
	Buttons     int `json:"buttons"`
	Forms       int `json:"forms"`
	Links       int `json:"links"`
	Products    int `json:"products"`
	Articles    int `json:"articles"`
	SearchBoxes int `json:"searchBoxes"`
}

// categoryFragments returns the canonical verification fragments for a
// category. When an analysis payload is present the fragments embed its
// expected element counts.
func categoryFragments(category classify.Category, analysis *Analysis) []Fragment {
	switch category {
	case classify.CategoryRepository:
		if analysis != nil {
			return []Fragment{{
				Name: "Verify repository page elements",
				Body: `  step('Verify repository page elements', async () => {
    try {
      const repoElements = page.locator('[data-testid*="repo"], .repository, .repo-name');
      if (await repoElements.count() > 0) {
        console.log('Repository elements found');
      }
      const codeElements = page.locator('pre, code, .highlight, .blob-code');
      if (await codeElements.count() > 0) {
        console.log(` + "`Found ${await codeElements.count()} code elements`" + `);
      }
    } catch (error) {
      console.log(` + "`Repository analysis failed: ${error.message}`" + `);
    }
  });`,
			}}
		}
		return []Fragment{
			{
				Name: "Check repository elements",
				Body: `  step('Check repository elements', async () => {
    try {
      const repoName = page.locator('[data-testid="AppHeader-context-item-label"], .js-repo-nav-item, h1 strong a');
      if (await repoName.count() > 0) {
        await expect(repoName.first()).toBeVisible();
        console.log('Repository name element found');
      }
      const codeElements = page.locator('.highlight, .blob-code, .file-navigation');
      if (await codeElements.count() > 0) {
        console.log('Code elements detected');
      }
    } catch (error) {
      console.log(` + "`Repository check failed: ${error.message}`" + `);
    }
  });`,
			},
			{
				Name: "Check for README or documentation",
				Body: `  step('Check for README or documentation', async () => {
    try {
      const readme = page.locator('#readme, [data-testid="readme"], .markdown-body');
      if (await readme.count() > 0) {
        await expect(readme.first()).toBeVisible();
        console.log('README or documentation found');
      }
    } catch (error) {
      console.log(` + "`Documentation check failed: ${error.message}`" + `);
    }
  });`,
			},
		}

	case classify.CategoryEcommerce:
		if analysis != nil {
			return []Fragment{{
				Name: "Verify e-commerce functionality",
				Body: fmt.Sprintf(`  step('Verify e-commerce functionality', async () => {
    try {
      const products = page.locator('.product, [data-testid*="product"], .item-card');
      console.log('Expected ~%d products based on analysis');
      const cartElements = page.locator('.cart, .add-to-cart, .shopping-cart');
      if (await cartElements.count() > 0) {
        console.log('Shopping cart functionality detected');
      }
    } catch (error) {
      console.log(`+"`E-commerce analysis failed: ${error.message}`"+`);
    }
  });`, analysis.Products),
			}}
		}
		return []Fragment{
			{
				Name: "Check for product listings",
				Body: `  step('Check for product listings', async () => {
    try {
      const products = page.locator('.product, [data-testid*="product"], .item, .card');
      if (await products.count() > 0) {
        await expect(products.first()).toBeVisible();
        console.log(` + "`Found ${await products.count()} product elements`" + `);
      }
    } catch (error) {
      console.log(` + "`Product listing check failed: ${error.message}`" + `);
    }
  });`,
			},
			{
				Name: "Check for cart or shopping functionality",
				Body: `  step('Check for cart or shopping functionality', async () => {
    try {
      const cartElements = page.locator('[data-testid*="cart"], .cart, .shopping-cart, .basket');
      if (await cartElements.count() > 0) {
        console.log('Shopping cart elements found');
      }
      const addToCartButtons = page.locator('button:has-text("Add to Cart"), button:has-text("Buy"), .add-to-cart');
      if (await addToCartButtons.count() > 0) {
        console.log('Add to cart buttons found');
      }
    } catch (error) {
      console.log(` + "`Cart functionality check failed: ${error.message}`" + `);
    }
  });`,
			},
		}

	case classify.CategoryBlog:
		if analysis != nil {
			return []Fragment{{
				Name: "Verify blog/article content",
				Body: fmt.Sprintf(`  step('Verify blog/article content', async () => {
    try {
      const articles = page.locator('article, .post, .entry, [role="article"]');
      console.log('Expected ~%d articles based on analysis');
      const metadata = page.locator('time, .date, .author, .published');
      if (await metadata.count() > 0) {
        console.log('Article metadata found');
      }
    } catch (error) {
      console.log(`+"`Blog analysis failed: ${error.message}`"+`);
    }
  });`, analysis.Articles),
			}}
		}
		return []Fragment{
			{
				Name: "Check for article content",
				Body: `  step('Check for article content', async () => {
    try {
      const articles = page.locator('article, .post, .entry, [data-testid*="article"]');
      if (await articles.count() > 0) {
        await expect(articles.first()).toBeVisible();
        console.log(` + "`Found ${await articles.count()} article elements`" + `);
      }
      const headings = page.locator('h1, h2, .title, .headline');
      if (await headings.count() > 0) {
        console.log('Article headings found');
      }
    } catch (error) {
      console.log(` + "`Article content check failed: ${error.message}`" + `);
    }
  });`,
			},
			{
				Name: "Check for metadata and publishing info",
				Body: `  step('Check for metadata and publishing info', async () => {
    try {
      const metadata = page.locator('.date, .author, .published, time, .byline');
      if (await metadata.count() > 0) {
        console.log('Article metadata found');
      }
    } catch (error) {
      console.log(` + "`Metadata check failed: ${error.message}`" + `);
    }
  });`,
			},
		}

	case classify.CategoryDocumentation:
		return []Fragment{
			{
				Name: "Check navigation and table of contents",
				Body: `  step('Check navigation and table of contents', async () => {
    try {
      const navigation = page.locator('.sidebar, .nav, .toc, .menu, [data-testid*="nav"]');
      if (await navigation.count() > 0) {
        await expect(navigation.first()).toBeVisible();
        console.log('Documentation navigation found');
      }
    } catch (error) {
      console.log(` + "`Navigation check failed: ${error.message}`" + `);
    }
  });`,
			},
			{
				Name: "Check for code examples",
				Body: `  step('Check for code examples', async () => {
    try {
      const codeBlocks = page.locator('pre, code, .highlight, .code-block');
      if (await codeBlocks.count() > 0) {
        console.log(` + "`Found ${await codeBlocks.count()} code examples`" + `);
      }
    } catch (error) {
      console.log(` + "`Code examples check failed: ${error.message}`" + `);
    }
  });`,
			},
		}

	case classify.CategorySocial:
		return []Fragment{{
			Name: "Check for social feed content",
			Body: `  step('Check for social feed content', async () => {
    try {
      const feed = page.locator('[role="feed"], .feed, .timeline, [data-testid*="post"]');
      if (await feed.count() > 0) {
        console.log('Social feed elements found');
      }
      const profiles = page.locator('[data-testid*="profile"], .profile, .avatar');
      if (await profiles.count() > 0) {
        console.log('Profile elements detected');
      }
    } catch (error) {
      console.log(` + "`Social feed check failed: ${error.message}`" + `);
    }
  });`,
		}}
	}

	return nil
}

// interactiveFragment embeds observed button/form/link counts.
func interactiveFragment(analysis *Analysis) Fragment {
	return Fragment{
		Name: "Verify interactive elements",
		Body: fmt.Sprintf(`  step('Verify interactive elements', async () => {
    try {
      const buttons = page.locator('button, input[type="submit"], .btn');
      console.log('Expected ~%d buttons based on analysis');
      const forms = page.locator('form');
      console.log('Expected ~%d forms based on analysis');
      const links = page.locator('a[href]');
      console.log('Expected ~%d links based on analysis');
    } catch (error) {
      console.log(`+"`Interactive elements analysis failed: ${error.message}`"+`);
    }
  });`, analysis.Buttons, analysis.Forms, analysis.Links),
	}
}

var searchFragment = Fragment{
	Name: "Verify search functionality",
	Body: `  step('Verify search functionality', async () => {
    try {
      const searchBoxes = page.locator('input[type="search"], [placeholder*="search" i]');
      if (await searchBoxes.count() > 0) {
        console.log('Search functionality detected');
      }
    } catch (error) {
      console.log(` + "`Search analysis failed: ${error.message}`" + `);
    }
  });`,
}

// genericPool is the fixed pool the generator draws randomized variety from.
// Order matters only insofar as tests pin a seed.
var genericPool = []Fragment{
	{
		Name: "Check page load performance",
		Body: `  step('Check page load performance', async () => {
    try {
      const loadTime = await page.evaluate(() => {
        return performance.getEntriesByType('navigation')[0].loadEventEnd -
               performance.getEntriesByType('navigation')[0].startTime;
      });
      console.log(` + "`Page load time: ${loadTime}ms`" + `);
      expect(loadTime).toBeLessThan(5000);
    } catch (error) {
      console.log(` + "`Performance check failed: ${error.message}`" + `);
    }
  });`,
	},
	{
		Name: "Check interactive elements",
		Body: `  step('Check interactive elements', async () => {
    try {
      const buttons = page.locator('button, input[type="submit"], .btn');
      const buttonCount = await buttons.count();
      console.log(` + "`Found ${buttonCount} interactive buttons`" + `);
      if (buttonCount > 0) {
        await expect(buttons.first()).toBeVisible();
      }
    } catch (error) {
      console.log(` + "`Interactive elements check failed: ${error.message}`" + `);
    }
  });`,
	},
	{
		Name: "Verify accessibility features",
		Body: `  step('Verify accessibility features', async () => {
    try {
      const headings = page.locator('h1, h2, h3, h4, h5, h6');
      console.log(` + "`Found ${await headings.count()} heading elements`" + `);
      const images = page.locator('img');
      const imageCount = await images.count();
      const imagesWithAlt = page.locator('img[alt]');
      console.log(` + "`${await imagesWithAlt.count()} of ${imageCount} images have alt text`" + `);
    } catch (error) {
      console.log(` + "`Accessibility check failed: ${error.message}`" + `);
    }
  });`,
	},
	{
		Name: "Test responsive design elements",
		Body: `  step('Test responsive design elements', async () => {
    try {
      const viewport = page.viewportSize();
      console.log(` + "`Current viewport: ${viewport?.width}x${viewport?.height}`" + `);
      const mobileElements = page.locator('.mobile, .responsive, [class*="mobile"], [class*="responsive"]');
      if (await mobileElements.count() > 0) {
        console.log('Responsive design elements detected');
      }
    } catch (error) {
      console.log(` + "`Responsive design check failed: ${error.message}`" + `);
    }
  });`,
	},
	{
		Name: "Validate page content structure",
		Body: `  step('Validate page content structure', async () => {
    try {
      const mainContent = page.locator('main, .main, .content, #content');
      if (await mainContent.count() > 0) {
        await expect(mainContent.first()).toBeVisible();
        console.log('Main content area found');
      }
      const navigation = page.locator('nav, .nav, .navigation, [role="navigation"]');
      if (await navigation.count() > 0) {
        console.log('Navigation elements found');
      }
    } catch (error) {
      console.log(` + "`Content structure check failed: ${error.message}`" + `);
    }
  });`,
	},
	{
		Name: "Check for form elements",
		Body: `  step('Check for form elements', async () => {
    try {
      const forms = page.locator('form');
      const formCount = await forms.count();
      console.log(` + "`Found ${formCount} form elements`" + `);
      if (formCount > 0) {
        const inputs = page.locator('input, textarea, select');
        console.log(` + "`Found ${await inputs.count()} input elements`" + `);
      }
    } catch (error) {
      console.log(` + "`Form check failed: ${error.message}`" + `);
    }
  });`,
	},
}
